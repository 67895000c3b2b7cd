package protocol

// CRC16 computes the frame checksum over the header and payload bytes.
// This is the CCITT polynomial in the bit order used by Klipper-family
// serial links, so a bridge MCU built from that ecosystem interoperates
// without translation.
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		b = b ^ uint8(crc&0xFF)
		b = b ^ (b << 4)
		b16 := uint16(b)
		crc = (b16<<8 | crc>>8) ^ (b16 >> 4) ^ (b16 << 3)
	}
	return crc
}
