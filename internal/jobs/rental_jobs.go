package jobs

import (
	"context"

	"carrental-backend/internal/utils"
)

// Autosave writes the in-memory ledger through the store
func (jr *JobRunner) Autosave() {
	jr.runWithRecovery("Autosave", func(ctx context.Context) {
		if err := jr.ledger.Save(ctx); err != nil {
			jr.log.Error("Failed to autosave ledger", "error", err)
			return
		}
		jr.log.Info("Ledger autosaved")
	})
}

// AuditAvailability logs vehicles whose availability flag disagrees with the
// current rentals. It never repairs them.
func (jr *JobRunner) AuditAvailability() {
	jr.runWithRecovery("AuditAvailability", func(ctx context.Context) {
		mismatched, err := jr.ledger.AuditAvailability(ctx)
		if err != nil {
			jr.log.Error("Failed to audit vehicle availability", "error", err)
			return
		}
		for _, id := range mismatched {
			jr.log.Warn("Vehicle availability disagrees with current rentals", "vehicle_id", id)
		}
		jr.log.Info("Availability audit finished", "mismatched", len(mismatched))
	})
}

// LogReport logs the dashboard summary
func (jr *JobRunner) LogReport() {
	jr.runWithRecovery("LogReport", func(ctx context.Context) {
		report, err := jr.ledger.Report(ctx)
		if err != nil {
			jr.log.Error("Failed to build rental report", "error", err)
			return
		}
		jr.log.Info("Rental report",
			"total_rentals", report.TotalRentals,
			"active_rentals", report.ActiveRentals,
			"total_revenue", utils.FormatMoney(report.TotalRevenue),
			"customers", report.Customers,
			"vehicles", report.Vehicles,
			"available_vehicles", report.AvailableVehicles,
		)
	})
}
