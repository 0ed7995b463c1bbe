package ports

type TickMetrics interface {
	RecordTick(completedJobs, arrivedMovements int)
	RecordConflict()
	RecordFailure()
}
