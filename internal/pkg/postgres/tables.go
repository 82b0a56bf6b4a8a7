package postgres

const (
	// TableRuns is the name of the runs table.
	TableRuns = "runs"
	// TableRunSteps is the name of the run steps table.
	TableRunSteps = "run_steps"
)
