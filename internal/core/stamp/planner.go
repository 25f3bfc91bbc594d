package stamp

import (
	"github.com/example/casedate/internal/core/dataset"
	"github.com/example/casedate/internal/core/effects"
)

// StampPlanInput contains the inputs needed to generate a stamp plan.
// All values are pre-fetched by the caller - no I/O in the planner.
type StampPlanInput struct {
	DatasetPath  string
	BackupPath   string
	BackupExists bool
	IDColumn     string
	DateColumn   string
	Table        *dataset.Table
	Identifiers  []string // distinct, first-occurrence order
	Sequence     Sequence
}

// StampPlan represents the planned effects for dating a dataset.
type StampPlan struct {
	DatasetPath   string
	BackupPath    string
	CreateBackup  bool
	Assignment    Assignment
	Sequence      Sequence
	Output        *dataset.Table
	FilesystemOps []effects.FileEffect
	LogOps        []effects.LogEffect
}

// Effects returns all effects as a flat slice for execution.
// The backup copy always precedes the write.
func (p StampPlan) Effects() []effects.Effect {
	result := make([]effects.Effect, 0, len(p.FilesystemOps)+len(p.LogOps))
	for _, e := range p.FilesystemOps {
		result = append(result, e)
	}
	for _, e := range p.LogOps {
		result = append(result, e)
	}
	return result
}

// GenerateStampPlan assigns dates and produces the dated table and the file
// operations that persist it. The input table is left untouched.
func GenerateStampPlan(input StampPlanInput) (StampPlan, error) {
	assignment := Assign(input.Identifiers, input.Sequence)

	output := input.Table.Clone()
	if err := Apply(output, input.IDColumn, input.DateColumn, assignment); err != nil {
		return StampPlan{}, err
	}

	plan := StampPlan{
		DatasetPath:  input.DatasetPath,
		BackupPath:   input.BackupPath,
		CreateBackup: !input.BackupExists,
		Assignment:   assignment,
		Sequence:     input.Sequence,
		Output:       output,
	}

	// 1. Backup, only if none exists yet
	if plan.CreateBackup {
		plan.FilesystemOps = append(plan.FilesystemOps, effects.FileEffect{
			Operation: "copy",
			Source:    input.DatasetPath,
			Path:      input.BackupPath,
		})
	}

	// 2. Replace the dataset with the dated table
	plan.FilesystemOps = append(plan.FilesystemOps, effects.FileEffect{
		Operation: "write_table",
		Path:      input.DatasetPath,
		Table:     output,
	})

	plan.LogOps = append(plan.LogOps, effects.LogEffect{
		Level:   "info",
		Message: "dataset stamped",
		Fields: map[string]any{
			"path":        input.DatasetPath,
			"identifiers": assignment.Len(),
			"rows":        len(output.Rows),
			"window":      input.Sequence.RangeLabel(),
		},
	})

	return plan, nil
}

// RestorePlanInput contains pre-fetched data for a restore.
type RestorePlanInput struct {
	DatasetPath string
	BackupPath  string
}

// RestorePlan describes rolling a dataset back to its backup.
type RestorePlan struct {
	DatasetPath   string
	BackupPath    string
	FilesystemOps []effects.FileEffect
	LogOps        []effects.LogEffect
}

// Effects returns all effects as a flat slice for execution.
func (p RestorePlan) Effects() []effects.Effect {
	result := make([]effects.Effect, 0, len(p.FilesystemOps)+len(p.LogOps))
	for _, e := range p.FilesystemOps {
		result = append(result, e)
	}
	for _, e := range p.LogOps {
		result = append(result, e)
	}
	return result
}

// GenerateRestorePlan copies the backup over the dataset. The backup is only read.
func GenerateRestorePlan(input RestorePlanInput) RestorePlan {
	return RestorePlan{
		DatasetPath: input.DatasetPath,
		BackupPath:  input.BackupPath,
		FilesystemOps: []effects.FileEffect{{
			Operation: "replace",
			Source:    input.BackupPath,
			Path:      input.DatasetPath,
		}},
		LogOps: []effects.LogEffect{{
			Level:   "info",
			Message: "dataset restored from backup",
			Fields: map[string]any{
				"path":   input.DatasetPath,
				"backup": input.BackupPath,
			},
		}},
	}
}
