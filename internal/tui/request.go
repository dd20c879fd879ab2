package tui

// requestStatus is the lifecycle of the one backend call a screen may have
// running at a time.
type requestStatus int

const (
	requestIdle requestStatus = iota
	requestInFlight
	requestSucceeded
	requestFailed
)

type requestState struct {
	status requestStatus
	err    error
}

func startRequest() requestState {
	return requestState{status: requestInFlight}
}

func requestDone(err error) requestState {
	if err != nil {
		return requestState{status: requestFailed, err: err}
	}
	return requestState{status: requestSucceeded}
}

func (r requestState) inFlight() bool {
	return r.status == requestInFlight
}

func (r requestState) failed() bool {
	return r.status == requestFailed
}
