package models

// TableSession is the occupancy window of one physical table. EndTime zero
// means the session is still open; at most one open session may exist per
// table at any time.
type TableSession struct {
	TableNumber   int    `json:"tableNumber"`
	SessionID     string `json:"sessionId"`
	CustomerCount int    `json:"customerCount"`
	StartTime     int64  `json:"startTime"`
	EndTime       int64  `json:"endTime"`
	Notes         string `json:"notes"`
}

func (s TableSession) Active() bool {
	return s.EndTime == 0
}
