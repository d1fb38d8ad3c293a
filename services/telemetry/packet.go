package telemetry

import "encoding/binary"

// Wire sizes. The packet layout is the radio link contract: fixed
// fields, no padding, multi-byte integers little-endian.
const (
	PacketSize         = 40
	PositionRecordSize = 16
)

// Packet is one telemetry frame.
type Packet struct {
	Seq        uint32
	VehicleID  uint8
	State      byte
	TimeMs     uint32 // ms since boot
	UTC        [3]uint8
	Lat        int32 // 1/1000 ddmm units
	Lng        int32
	Satellites uint8
	Pressure   uint32 // Pa
	Temp       int16 // centidegrees
	Accel      [3]int16
	Gyro       [3]int16
}

// Marshal serializes the packet into its wire layout.
func (p *Packet) Marshal() [PacketSize]byte {
	var b [PacketSize]byte
	binary.LittleEndian.PutUint32(b[0:], p.Seq)
	b[4] = p.VehicleID
	b[5] = p.State
	binary.LittleEndian.PutUint32(b[6:], p.TimeMs)
	copy(b[10:13], p.UTC[:])
	binary.LittleEndian.PutUint32(b[13:], uint32(p.Lat))
	binary.LittleEndian.PutUint32(b[17:], uint32(p.Lng))
	b[21] = p.Satellites
	binary.LittleEndian.PutUint32(b[22:], p.Pressure)
	binary.LittleEndian.PutUint16(b[26:], uint16(p.Temp))
	off := 28
	for _, v := range p.Accel {
		binary.LittleEndian.PutUint16(b[off:], uint16(v))
		off += 2
	}
	for _, v := range p.Gyro {
		binary.LittleEndian.PutUint16(b[off:], uint16(v))
		off += 2
	}
	return b
}

// PositionRecord is the derived fix archived to storage after each
// cycle, tagged CategoryPosition.
type PositionRecord struct {
	TimeMs     uint32
	Lat        int32
	Lng        int32
	Satellites uint8
	UTC        [3]uint8
}

// Marshal serializes the record into its fixed storage layout.
func (r *PositionRecord) Marshal() [PositionRecordSize]byte {
	var b [PositionRecordSize]byte
	binary.LittleEndian.PutUint32(b[0:], r.TimeMs)
	binary.LittleEndian.PutUint32(b[4:], uint32(r.Lat))
	binary.LittleEndian.PutUint32(b[8:], uint32(r.Lng))
	b[12] = r.Satellites
	copy(b[13:16], r.UTC[:])
	return b
}
