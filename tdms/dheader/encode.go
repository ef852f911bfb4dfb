package dheader

import (
	"tdms-savior/tdms/lbytes"
)

func Encode(leadIn LeadIn) []byte {
	order := lbytes.LittleEndian
	if leadIn.TOC.Has(TOCBigEndian) {
		order = lbytes.BigEndian
	}
	bs := make([]byte, 0, LeadInSize)
	bs = append(bs, MagicNumberBytes...)
	bs = append(bs, lbytes.EncodeUint32(lbytes.LittleEndian, uint32(leadIn.TOC))...)
	bs = append(bs, lbytes.EncodeInt32(order, leadIn.Version)...)
	bs = append(bs, lbytes.EncodeUint64(order, leadIn.NextSegmentOffset)...)
	bs = append(bs, lbytes.EncodeUint64(order, leadIn.RawDataOffset)...)
	return bs
}
