package dsample

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/exp/constraints"

	"tdms-savior/tdms/derr"
	"tdms-savior/tdms/dpath"
)

type number interface {
	constraints.Integer | constraints.Float
}

func toFloat64s[T number](ts []T) []float64 {
	return lo.Map(
		ts,
		func(t T, _ int) float64 {
			return float64(t)
		},
	)
}

// ToFloat64s widens a typed slice returned by Values. Booleans become 0 or 1.
func ToFloat64s(values any) ([]float64, error) {
	switch vs := values.(type) {
	case nil:
		return []float64{}, nil
	case []int8:
		return toFloat64s(vs), nil
	case []int16:
		return toFloat64s(vs), nil
	case []int32:
		return toFloat64s(vs), nil
	case []int64:
		return toFloat64s(vs), nil
	case []uint8:
		return toFloat64s(vs), nil
	case []uint16:
		return toFloat64s(vs), nil
	case []uint32:
		return toFloat64s(vs), nil
	case []uint64:
		return toFloat64s(vs), nil
	case []float32:
		return toFloat64s(vs), nil
	case []float64:
		return vs, nil
	case []bool:
		return lo.Map(
			vs,
			func(b bool, _ int) float64 {
				if b {
					return 1
				}
				return 0
			},
		), nil
	}
	return nil, derr.New(derr.KindNotImplemented, -1, "%s values are not numeric", fmt.Sprintf("%T", values))
}

func (r *Extractor) Float64s(object dpath.ID) ([]float64, error) {
	values, err := r.Values(object)
	if err != nil {
		return nil, err
	}
	return ToFloat64s(values)
}

// ReadAs returns the samples of object as []T, failing when the object's
// samples are of another type.
func ReadAs[T any](r *Extractor, object dpath.ID) ([]T, error) {
	values, err := r.Values(object)
	if err != nil {
		return nil, err
	}
	if values == nil {
		return []T{}, nil
	}
	ts, ok := values.([]T)
	if !ok {
		var zero T
		return nil, derr.New(derr.KindNotImplemented, -1, "samples are %T, not []%T", values, zero)
	}
	return ts, nil
}
