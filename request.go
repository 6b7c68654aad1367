package hostbridge

import (
	"strconv"
	"sync/atomic"
)

// RequestId identifies which registered command the host loop should run.
type RequestId int32

// None means there is nothing to handle.
const None RequestId = 0

func (id RequestId) String() string {
	if id == None {
		return "None"
	}
	return "Request(" + strconv.Itoa(int(id)) + ")"
}

// Request is a single-slot mailbox shared by the UI goroutine and the host loop.
// Only the latest Make since the last Take is observed; earlier ones are dropped.
type Request struct {
	v atomic.Int32
}

// Take returns the pending id and resets the slot to None in one exchange.
func (r *Request) Take() RequestId {
	return RequestId(r.v.Swap(int32(None)))
}

// Make overwrites whatever is pending with id.
func (r *Request) Make(id RequestId) {
	r.v.Swap(int32(id))
}

// Peek reports the pending id without clearing it.
func (r *Request) Peek() RequestId {
	return RequestId(r.v.Load())
}
