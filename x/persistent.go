package x

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it, so errors should be
// expected even for input that looks correct.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshaller, as Unmarshal almost always requires a
// pointer, while functions that only serialize can accept non-pointers using
// the Marshaller interface.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// MustMarshal serializes the object or panics.
func MustMarshal(obj Marshaller) []byte {
	bz, err := obj.Marshal()
	if err != nil {
		panic(err)
	}
	return bz
}

// MustUnmarshal parses the bytes into the object or panics.
func MustUnmarshal(obj Persistent, bz []byte) {
	if err := obj.Unmarshal(bz); err != nil {
		panic(err)
	}
}

// Validater is any struct that can be validated. Not the same as a Validator,
// which votes on blocks.
type Validater interface {
	Validate() error
}

// MustValidate panics if the object is not valid.
func MustValidate(obj Validater) {
	if err := obj.Validate(); err != nil {
		panic(err)
	}
}

// MarshalValidater is something that can be validated and serialized.
type MarshalValidater interface {
	Marshaller
	Validater
}

// MustMarshalValid marshals the object, but panics if the object is not valid
// or has trouble marshalling.
func MustMarshalValid(obj MarshalValidater) []byte {
	MustValidate(obj)
	return MustMarshal(obj)
}
