package ai

// RunStatus закрытый набор статусов run. Любое значение вне набора
// клиент сводит к RunInProgress: цикл опроса сам упрётся в дедлайн.
type RunStatus string

const (
	RunQueued     RunStatus = "queued"
	RunInProgress RunStatus = "in_progress"
	RunCompleted  RunStatus = "completed"
	RunFailed     RunStatus = "failed"
	RunCancelled  RunStatus = "cancelled"
	RunExpired    RunStatus = "expired"
	RunIncomplete RunStatus = "incomplete"
)

// Terminal сообщает, что обработка закончена и опрашивать дальше незачем.
func (s RunStatus) Terminal() bool {
	return s == RunCompleted || s.Failure()
}

// Failure терминальный статус без пригодного результата.
func (s RunStatus) Failure() bool {
	switch s {
	case RunFailed, RunCancelled, RunExpired, RunIncomplete:
		return true
	}
	return false
}
