package ui

import (
	"github.com/samber/lo"
)

type Stats struct {
	Len  int
	Min  float64
	Max  float64
	Mean float64
}

func ComputeStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	lowest := lo.Reduce(
		values,
		func(acc float64, v float64, _ int) float64 {
			if v < acc {
				return v
			}
			return acc
		},
		values[0],
	)
	highest := lo.Reduce(
		values,
		func(acc float64, v float64, _ int) float64 {
			if v > acc {
				return v
			}
			return acc
		},
		values[0],
	)
	sum := lo.Reduce(
		values,
		func(acc float64, v float64, _ int) float64 {
			return acc + v
		},
		0,
	)
	return Stats{
		Len:  len(values),
		Min:  lowest,
		Max:  highest,
		Mean: sum / float64(len(values)),
	}
}
