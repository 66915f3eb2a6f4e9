package models

// ActionData is one unit of intent from a client. Type carries the wire
// discriminant ("pressa", "holdleftstick", "wait", ...); X/Y are stick
// coordinates in [-1.0, 1.0]; Milliseconds is a hold duration, a wait
// duration or an absolute timestep depending on Type.
type ActionData struct {
	Type         string  `json:"Type"`
	X            float64 `json:"X,omitempty"`
	Y            float64 `json:"Y,omitempty"`
	Milliseconds int     `json:"Milliseconds,omitempty"`
}

// ActionRequest is the body of POST /api/xbox/actions/execute
type ActionRequest struct {
	Actions []ActionData `json:"Actions"`
}
