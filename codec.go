package tlfund

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tlfund/errors"
)

// Marshal serializes a protobuf declared structure.
func Marshal(m proto.Message) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot marshal %T: %s", m, err)
	}
	return raw, nil
}

// Unmarshal loads protobuf serialized data into given structure.
func Unmarshal(raw []byte, m proto.Message) error {
	if err := proto.Unmarshal(raw, m); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot unmarshal %T: %s", m, err)
	}
	return nil
}

// Metadata is attached to every message and model. It carries the schema
// version of the structure.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return proto.CompactTextString(m) }
func (*Metadata) ProtoMessage()    {}

// Validate returns an error if this metadata does not declare a schema.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema == 0 {
		return errors.Wrap(errors.ErrMetadata, "schema version is required")
	}
	return nil
}
