package checklist

import "github.com/samber/lo"

// ResolvedTask is a TaskDefinition with every template evaluated for one configuration.
type ResolvedTask struct {
	ID                   string   `json:"id"`
	PhaseID              string   `json:"phaseId"`
	Label                string   `json:"label"`
	Kind                 TaskKind `json:"kind"`
	To                   string   `json:"to,omitempty"`
	CC                   string   `json:"cc,omitempty"`
	Subject              string   `json:"subject,omitempty"`
	Body                 string   `json:"body,omitempty"`
	Note                 string   `json:"note,omitempty"`
	SubTasks             []string `json:"subTasks,omitempty"`
	NeedsAttachmentCheck bool     `json:"needsAttachmentCheck"`
	HideSubject          bool     `json:"hideSubject"`
}

// Phase is a titled, ordered slice of the resolved task sequence.
type Phase struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Tasks []ResolvedTask `json:"tasks"`
}

// Plan is the resolved, phase-ordered task list for one configuration.
type Plan struct {
	Phases []Phase `json:"phases"`
}

// Tasks flattens the plan in phase order.
func (p Plan) Tasks() []ResolvedTask {
	return lo.FlatMap(p.Phases, func(phase Phase, _ int) []ResolvedTask {
		return phase.Tasks
	})
}

func (p Plan) TaskIDs() []string {
	return lo.Map(p.Tasks(), func(t ResolvedTask, _ int) string {
		return t.ID
	})
}

func (p Plan) Phase(id string) (Phase, bool) {
	return lo.Find(p.Phases, func(phase Phase) bool {
		return phase.ID == id
	})
}

// Task looks up a resolved task by id.
func (p Plan) Task(id string) (ResolvedTask, bool) {
	return lo.Find(p.Tasks(), func(t ResolvedTask) bool {
		return t.ID == id
	})
}

// Resolve expands the catalog for cfg. Inspection-only phases are left out
// entirely unless the shipment is with-inspection. The result depends only on
// cfg, and the catalog is never modified.
func (c *Catalog) Resolve(cfg Configuration) Plan {
	ctx := TemplateContext{
		Configuration:  cfg,
		ForwarderName:  c.dir.forwarder(cfg.Forwarder).DisplayName,
		FumigationName: c.dir.fumigation(cfg.Fumigation).DisplayName,
	}

	phases := make([]Phase, 0, len(c.phases))
	for _, def := range c.phases {
		if def.inspectionOnly && !cfg.WithInspection() {
			continue
		}
		phases = append(phases, Phase{
			ID:    def.id,
			Title: def.title(cfg),
			Tasks: lo.Map(def.tasks(cfg), func(t TaskDefinition, _ int) ResolvedTask {
				return resolveTask(def.id, t, ctx)
			}),
		})
	}
	return Plan{Phases: phases}
}

func resolveTask(phaseID string, t TaskDefinition, ctx TemplateContext) ResolvedTask {
	kind := t.Kind
	if kind == "" {
		kind = TaskKindPlain
	}
	resolved := ResolvedTask{
		ID:                   t.ID,
		PhaseID:              phaseID,
		Label:                t.Label,
		Kind:                 kind,
		To:                   t.To.Render(ctx),
		CC:                   t.CC.Render(ctx),
		Body:                 t.Body.Render(ctx),
		Note:                 t.Note,
		SubTasks:             append([]string(nil), t.SubTasks...),
		NeedsAttachmentCheck: t.NeedsAttachmentCheck,
		HideSubject:          t.HideSubject,
	}
	if !t.HideSubject {
		resolved.Subject = t.Subject.Render(ctx)
	}
	return resolved
}
