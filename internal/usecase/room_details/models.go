package room_details

// Request asks for the per-room state list of one sailing. GradeCode
// is optional; when set only that grade's rooms are returned.
type Request struct {
	RouteCode  string
	ScheduleID int64
	GradeCode  string
}

// Room is one unit with its derived state label.
type Room struct {
	RoomNumber string `json:"room_number"`
	GradeCode  string `json:"grade_code"`
	State      string `json:"state"`
	StateLabel string `json:"state_label"`
}

// Response lists the sailing's rooms grouped into display order:
// confirmed first, then blocked, then vacant, each block sorted by
// room number.
type Response struct {
	ScheduleID int64  `json:"schedule_id"`
	Rooms      []Room `json:"rooms"`
}
