package swaplock

import (
	"reflect"

	"github.com/lockboxlabs/swaplock/errors"
)

// Msg is a request for the state machine to take an action. It is only the
// payload of the request. All authentication information is carried by the
// wrapping Tx.
type Msg interface {
	Persistent

	// Validate performs a sanity check on the message content that does
	// not require any state access. Handlers must call it before acting
	// on the message.
	Validate() error

	// Path returns the routing path of the message. This is used by the
	// Router to locate the proper Handler. Multiple message types may
	// share a value and will end up at the same Handler.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string
}

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshaller, as Unmarshal almost always requires a
// pointer, and functions that only need to marshal bytes can use the
// Marshaller interface to accept non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represents the data sent from the user to the chain. It includes the
// actual message, along with information needed to authenticate the sender
// (cryptographic signatures) and to pay fees.
//
// Each application defines its own concrete tx type, which embeds all the
// extensions that it wishes to support.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message inside the transaction, or
// "(missing)" if no message is set.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, validates it and writes
// the result into dest, which must be a non-nil pointer of the same type as
// the transaction message.
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrState, "message is <nil>")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "validate msg")
	}

	val := reflect.ValueOf(dest)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return errors.Wrapf(errors.ErrType, "%T is not a valid message destination", dest)
	}
	mval := reflect.ValueOf(msg)
	if val.Type() != mval.Type() {
		return errors.Wrapf(errors.ErrType, "want %T message destination, got %T", msg, dest)
	}
	val.Elem().Set(mval.Elem())
	return nil
}

// ExtractMsgFromSum will find a message inside a tx sum type, if it exists.
// Assuming you define your Tx with a sum message and that the message is the
// only field of the wrapper struct, like:
//
//   message Tx {
//     oneof sum {
//       escrow.MakeMsg make_msg = 1;
//     }
//   }
//
// then this function can be called with the result of tx.GetSum() to get the
// proper message.
func ExtractMsgFromSum(sum interface{}) (Msg, error) {
	if sum == nil {
		return nil, errors.Wrap(errors.ErrInput, "message container is <nil>")
	}
	pval := reflect.ValueOf(sum)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported message container type: %T", sum)
	}
	val := pval.Elem()
	if val.NumField() != 1 {
		return nil, errors.Wrapf(errors.ErrInput, "unsupported message container field count: %d", val.NumField())
	}
	field := val.Field(0)
	if field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, "message is <nil>")
	}
	res, ok := field.Interface().(Msg)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "unsupported message type: %T", field.Interface())
	}
	return res, nil
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)
