package iface

import "time"

// Pool holds a fixed number of slots. A slot is either live (holding an
// open connection) or vacant (nil, dialed on demand when borrowed).
type Pool interface {
	// Close waits for every slot to be released, closes the live
	// connections and shuts the pool down.
	Close()

	// Borrow takes a slot, preferring a live one, and blocks while all
	// slots are in use. A vacant slot is dialed before it is returned;
	// false means the dial failed and the slot went back to the pool.
	Borrow() (Conn, bool)

	// BorrowTimeout is Borrow that gives up and returns (nil, false)
	// once timeout elapses.
	BorrowTimeout(timeout time.Duration) (Conn, bool)

	// Release hands a slot back. Call it exactly once per successful
	// borrow. Release nil in place of a broken connection so the slot
	// becomes vacant.
	Release(conn Conn)
}
