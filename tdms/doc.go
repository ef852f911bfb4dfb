// Package tdms opens National Instruments TDMS measurement files.
//
// Open scans every segment once and keeps a compact index; channel samples
// are read afterwards on demand, straight from the source:
//
//	file, err := tdms.Open(f)
//	if err != nil {
//		return err
//	}
//	for _, group := range file.Groups() {
//		for _, channel := range group.Channels() {
//			values, err := channel.ReadFloat64()
//			...
//		}
//	}
package tdms
