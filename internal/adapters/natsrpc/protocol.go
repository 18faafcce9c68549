// Package natsrpc implements the worker coordination transport over NATS
// request/reply. The master subscribes to the three protocol subjects;
// workers issue requests against them, each with its own timeout and retry
// policy.
package natsrpc

// Protocol subjects. One subject per operation keeps server dispatch flat.
const (
	SubjectAttach = "forge.worker.attach"
	SubjectNotify = "forge.worker.notify"
	SubjectClose  = "forge.worker.close"
)

// Reply error codes. The client maps codeProtocolViolation onto a fatal
// outcome; everything else under !OK is fatal too, the code just preserves
// the class for diagnostics.
const (
	codeProtocolViolation = "protocol-violation"
	codeInternal          = "internal"
)

type attachRequest struct {
	WorkerID string `json:"workerId"`
	Endpoint string `json:"endpoint"`
	Slots    int    `json:"slots"`
}

type notifyRequest struct {
	WorkerID       string   `json:"workerId"`
	Status         string   `json:"status"`
	CompletedSteps []uint64 `json:"completedSteps,omitempty"`
}

type closeRequest struct {
	WorkerID string `json:"workerId"`
}

type reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}
