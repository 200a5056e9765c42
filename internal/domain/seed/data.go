package seed

import (
	"time"

	"github.com/ward/ward/internal/domain/clinician"
	"github.com/ward/ward/internal/domain/patient"
	"github.com/ward/ward/internal/domain/task"
)

func strPtr(s string) *string { return &s }

var demoUser = clinician.User{
	Name:  "Dr. Test Resident",
	Email: strPtr("resident@example.com"),
}

var demoPatients = []patient.Patient{
	{
		Name:        "John Doe",
		Bed:         strPtr("12A"),
		MainProblem: strPtr("Sepsis secondary to pneumonia"),
		Priority:    patient.PriorityCritical,
	},
	{
		Name:        "Maria Garcia",
		Bed:         strPtr("7B"),
		MainProblem: strPtr("Decompensated heart failure"),
		Priority:    patient.PriorityImportant,
	},
	{
		Name:        "Ahmed Khan",
		Bed:         strPtr("3C"),
		MainProblem: strPtr("Uncontrolled diabetes"),
		Priority:    patient.PriorityNormal,
	},
}

// demoTask is a task template. Patient indexes demoPatients and Due is an
// offset from the load time.
type demoTask struct {
	Patient  int
	Title    string
	Notes    *string
	Due      time.Duration
	Priority task.Priority
}

var demoTasks = []demoTask{
	{Patient: 0, Title: "Recheck lactate", Notes: strPtr("Draw in 4 hours"), Due: 4 * time.Hour, Priority: task.PriorityHigh},
	{Patient: 0, Title: "Review blood culture results", Due: 8 * time.Hour, Priority: task.PriorityMedium},
	{Patient: 1, Title: "Follow up echocardiogram", Due: 6 * time.Hour, Priority: task.PriorityHigh},
	{Patient: 1, Title: "Adjust diuretics", Due: 10 * time.Hour, Priority: task.PriorityMedium},
	{Patient: 2, Title: "Review blood glucose log", Due: 24 * time.Hour, Priority: task.PriorityLow},
	{Patient: 2, Title: "Check HbA1c result", Due: 26 * time.Hour, Priority: task.PriorityMedium},
}
