package domain

import "time"

// StageAwaitingAttendance is the stage number that marks a ticket as waiting
// for an attendant. The monitor only ever escalates tickets in this stage.
const StageAwaitingAttendance = 1

// Ticket is a read-only snapshot of a service ticket. The system of record
// owns all mutation; this service reloads snapshots wholesale on each refresh
// or mutation event.
type Ticket struct {
	ID           string
	Title        string
	StageNumber  int
	CreatedAt    time.Time
	Stage1ExitAt *time.Time
}

// Awaiting reports whether the ticket is still waiting for attendance.
func (t Ticket) Awaiting() bool {
	return t.StageNumber == StageAwaitingAttendance
}

// Stage is reference data describing a workflow phase.
type Stage struct {
	ID     string
	Number int
	Name   string
}
