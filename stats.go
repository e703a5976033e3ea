// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package auxcallback

import (
	"sync/atomic"
)

// Stats is a snapshot of the counters of an [Engine].
type Stats struct {
	// Invoked is the number of callbacks called.
	Invoked uint64
	// Failed is the number of callbacks that returned an error or panicked.
	Failed uint64
	// Panicked is the number of callbacks that panicked (included in Failed).
	Panicked uint64
	// Reported is the number of failures accepted by the error sink.
	Reported uint64
	// ReportFailures is the number of failures the error sink itself failed
	// to report.
	ReportFailures uint64
	// BudgetExceeded is the number of time bounded drains that ran out of
	// time.
	BudgetExceeded uint64
	// Overlapping is the number of drains started while another was still
	// in progress.
	Overlapping uint64
}

// engineStats are the live counters behind Stats.
type engineStats struct {
	invoked        atomic.Uint64
	failed         atomic.Uint64
	panicked       atomic.Uint64
	reported       atomic.Uint64
	reportFailures atomic.Uint64
	budgetExceeded atomic.Uint64
	overlapping    atomic.Uint64
}

func (x *engineStats) snapshot() Stats {
	return Stats{
		Invoked:        x.invoked.Load(),
		Failed:         x.failed.Load(),
		Panicked:       x.panicked.Load(),
		Reported:       x.reported.Load(),
		ReportFailures: x.reportFailures.Load(),
		BudgetExceeded: x.budgetExceeded.Load(),
		Overlapping:    x.overlapping.Load(),
	}
}
