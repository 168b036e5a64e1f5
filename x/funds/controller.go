package funds

import (
	"github.com/lockboxlabs/swaplock"
	"github.com/lockboxlabs/swaplock/errors"
)

// rentPool is the account all storage deposits are parked in between
// ChargeRent and RefundRent. No signature can ever match it, so only this
// controller moves units out of it.
var rentPool = swaplock.NewCondition("funds", "rent", []byte("pool")).Address()

// RentPool returns the address storage deposits are held at.
func RentPool() swaplock.Address {
	return rentPool
}

// Mover is the subset of the Controller that decorators need to collect
// fees.
type Mover interface {
	Move(db swaplock.KVStore, src, dest swaplock.Address, amount uint64) error
}

// Controller is the interface other extensions program against to touch
// native unit balances. BaseController should work plenty fine.
type Controller interface {
	Mover
	Balance(db swaplock.ReadOnlyKVStore, addr swaplock.Address) (uint64, error)
	Credit(db swaplock.KVStore, dest swaplock.Address, amount uint64) error
	Debit(db swaplock.KVStore, src swaplock.Address, amount uint64) error
	ChargeRent(db swaplock.KVStore, payer swaplock.Address, amount uint64) error
	RefundRent(db swaplock.KVStore, recipient swaplock.Address, amount uint64) error
}

// BaseController implements the Controller interface on top of the wallet
// bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the spendable balance of the address. An address that was
// never credited has balance zero, that is not an error.
func (c BaseController) Balance(db swaplock.ReadOnlyKVStore, addr swaplock.Address) (uint64, error) {
	wallet, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, err
	}
	if wallet == nil {
		return 0, nil
	}
	return wallet.Balance, nil
}

// Credit adds amount to the balance of dest. Crediting zero is a no-op and
// does not create a wallet.
func (c BaseController) Credit(db swaplock.KVStore, dest swaplock.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	wallet, err := c.bucket.Get(db, dest)
	if err != nil {
		return err
	}
	if wallet == nil {
		wallet = new(Wallet)
	}
	if wallet.Balance+amount < wallet.Balance {
		return errors.Wrapf(errors.ErrOverflow, "credit %d to %s", amount, dest)
	}
	wallet.Balance += amount
	return c.bucket.Save(db, dest, wallet)
}

// Debit removes amount from the balance of src. Removing the whole balance
// deletes the wallet. Removing more than the balance fails and changes
// nothing. Debiting zero is a no-op.
func (c BaseController) Debit(db swaplock.KVStore, src swaplock.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	wallet, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	var balance uint64
	if wallet != nil {
		balance = wallet.Balance
	}
	if balance < amount {
		return errors.Wrapf(ErrInsufficientFunds, "debit %d of %d", amount, balance)
	}
	if balance == amount {
		return c.bucket.Delete(db, src)
	}
	wallet.Balance = balance - amount
	return c.bucket.Save(db, src, wallet)
}

// Move takes amount from src and adds it to dest. On error neither balance
// changed. Moving zero units is a no-op.
func (c BaseController) Move(db swaplock.KVStore, src, dest swaplock.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	var balance uint64
	if sender != nil {
		balance = sender.Balance
	}
	if balance < amount {
		return errors.Wrapf(ErrInsufficientFunds, "move %d of %d", amount, balance)
	}
	// nothing changes when moving within one wallet
	if src.Equals(dest) {
		return nil
	}
	recipient, err := c.bucket.Get(db, dest)
	if err != nil {
		return err
	}
	if recipient == nil {
		recipient = new(Wallet)
	}
	if recipient.Balance+amount < recipient.Balance {
		return errors.Wrapf(errors.ErrOverflow, "credit %d to %s", amount, dest)
	}

	recipient.Balance += amount
	if balance == amount {
		if err := c.bucket.Delete(db, src); err != nil {
			return err
		}
	} else {
		sender.Balance = balance - amount
		if err := c.bucket.Save(db, src, sender); err != nil {
			return err
		}
	}
	return c.bucket.Save(db, dest, recipient)
}

// ChargeRent collects a storage deposit from the payer into the rent pool.
// The deposit comes back through RefundRent once whatever it paid for is
// released.
func (c BaseController) ChargeRent(db swaplock.KVStore, payer swaplock.Address, amount uint64) error {
	return errors.Wrap(c.Move(db, payer, rentPool, amount), "charge rent")
}

// RefundRent returns a storage deposit from the rent pool to the recipient.
func (c BaseController) RefundRent(db swaplock.KVStore, recipient swaplock.Address, amount uint64) error {
	return errors.Wrap(c.Move(db, rentPool, recipient, amount), "refund rent")
}
