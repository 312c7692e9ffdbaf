package checklist

import "github.com/samber/lo"

// CustomTask is a user-added task outside the catalog. It counts toward
// overall progress but has no position in the workflow order.
type CustomTask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Percent rounds done/total to the nearest whole percent, halves rounding up.
// An empty total is 0%.
func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*done + total) / (2 * total)
}

// OverallProgress counts every resolved task plus every custom task.
func OverallProgress(plan Plan, completion CompletionMap, customTasks []CustomTask) int {
	tasks := plan.Tasks()
	done := countChecked(tasks, completion) + lo.CountBy(customTasks, func(t CustomTask) bool {
		return t.Completed
	})
	return Percent(done, len(tasks)+len(customTasks))
}

// PhaseProgress scores one phase's tasks. Custom tasks never belong to a phase.
func PhaseProgress(tasks []ResolvedTask, completion CompletionMap) int {
	return Percent(countChecked(tasks, completion), len(tasks))
}

// MissedTasks returns, in sequence order, every incomplete task that has a
// completed task somewhere after it in the resolved sequence.
func MissedTasks(plan Plan, completion CompletionMap) []ResolvedTask {
	tasks := plan.Tasks()
	missed := make([]bool, len(tasks))
	laterDone := false
	for i := len(tasks) - 1; i >= 0; i-- {
		if completion.Checked(tasks[i].ID) {
			laterDone = true
			continue
		}
		missed[i] = laterDone
	}
	return lo.Filter(tasks, func(_ ResolvedTask, i int) bool {
		return missed[i]
	})
}

func countChecked(tasks []ResolvedTask, completion CompletionMap) int {
	return lo.CountBy(tasks, func(t ResolvedTask) bool {
		return completion.Checked(t.ID)
	})
}

// TaskStatus is a resolved task annotated with its state for one shipment.
type TaskStatus struct {
	ResolvedTask
	Checked bool   `json:"checked"`
	Missed  bool   `json:"missed"`
	Remarks string `json:"remarks,omitempty"`
}

type PhaseReport struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Progress  int          `json:"progress"`
	Completed int          `json:"completed"`
	Total     int          `json:"total"`
	Tasks     []TaskStatus `json:"tasks"`
}

// Report is the derived progress view of one shipment. It is recomputed on
// every read and never stored.
type Report struct {
	Overall         int           `json:"overall"`
	Completed       int           `json:"completed"`
	Total           int           `json:"total"`
	CustomCompleted int           `json:"customCompleted"`
	CustomTotal     int           `json:"customTotal"`
	Phases          []PhaseReport `json:"phases"`
	MissedTaskIDs   []string      `json:"missedTaskIds"`
}

// Evaluate computes overall, per-phase and missed-task state in one pass over the plan.
func Evaluate(plan Plan, completion CompletionMap, customTasks []CustomTask) Report {
	missed := MissedTasks(plan, completion)
	missedIDs := lo.Map(missed, func(t ResolvedTask, _ int) string { return t.ID })
	missedSet := lo.Associate(missedIDs, func(id string) (string, struct{}) {
		return id, struct{}{}
	})

	report := Report{
		Overall:       OverallProgress(plan, completion, customTasks),
		CustomTotal:   len(customTasks),
		Phases:        make([]PhaseReport, 0, len(plan.Phases)),
		MissedTaskIDs: missedIDs,
	}
	report.CustomCompleted = lo.CountBy(customTasks, func(t CustomTask) bool { return t.Completed })

	for _, phase := range plan.Phases {
		pr := PhaseReport{
			ID:       phase.ID,
			Title:    phase.Title,
			Progress: PhaseProgress(phase.Tasks, completion),
			Total:    len(phase.Tasks),
			Tasks:    make([]TaskStatus, 0, len(phase.Tasks)),
		}
		for _, task := range phase.Tasks {
			_, isMissed := missedSet[task.ID]
			status := TaskStatus{
				ResolvedTask: task,
				Checked:      completion.Checked(task.ID),
				Missed:       isMissed,
				Remarks:      completion.Remarks(task.ID),
			}
			if status.Checked {
				pr.Completed++
			}
			pr.Tasks = append(pr.Tasks, status)
		}
		report.Completed += pr.Completed
		report.Total += pr.Total
		report.Phases = append(report.Phases, pr)
	}
	report.Completed += report.CustomCompleted
	report.Total += report.CustomTotal
	return report
}
