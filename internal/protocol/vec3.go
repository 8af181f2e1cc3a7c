package protocol

import "github.com/embervale/coreserver/internal/model"

// WriteVec3 and ReadVec3 give every message type a single place to encode
// the position/rotation triples the wire format passes around.
func (w *Writer) WriteVec3(v model.Vec3) {
	w.WriteFloat32(v.X)
	w.WriteFloat32(v.Y)
	w.WriteFloat32(v.Z)
}

func (r *Reader) ReadVec3() (model.Vec3, error) {
	x, err := r.ReadFloat32()
	if err != nil {
		return model.Vec3{}, err
	}
	y, err := r.ReadFloat32()
	if err != nil {
		return model.Vec3{}, err
	}
	z, err := r.ReadFloat32()
	if err != nil {
		return model.Vec3{}, err
	}
	return model.Vec3{X: x, Y: y, Z: z}, nil
}
