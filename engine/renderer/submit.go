package renderer

import "github.com/spaghettifunk/idraw/engine/core"

// Executor applies decoded commands to the GPU (or a stand-in for it).
type Executor interface {
	Execute(cmd Command)
	// RestoreDefaults puts the pipeline state back to the baseline every
	// command buffer starts from.
	RestoreDefaults()
}

type SubmitStats struct {
	Commands  uint32
	DrawCalls uint32
}

// Submit walks exactly cb.Count() records in order, hands each to ex, then
// resets cb and restores the baseline state. Commands are executed on the
// calling goroutine, which must own the GPU context.
func Submit(cb *CommandBuffer, ex Executor) SubmitStats {
	var stats SubmitStats
	for cmd := range cb.Commands() {
		ex.Execute(cmd)
		stats.Commands++
		switch cmd.(type) {
		case DrawCmd, DrawIndexedCmd:
			stats.DrawCalls++
		}
	}
	cb.Reset()
	ex.RestoreDefaults()
	return stats
}

// UnknownCommand aborts on a command an executor has no handler for.
func UnknownCommand(cmd Command) {
	core.Fatal(core.ErrUnknownOpcode, "no handler for %s", cmd.Opcode())
}
