// Package timezone pins every wall-clock decision of the service to one configured zone.
//
// Meetings are stored as a calendar date plus clock times without an offset, so "is this slot
// in the past" is only meaningful relative to a fixed zone. The zone comes from APP_TIMEZONE
// (default America/Sao_Paulo) and is loaded when the package is imported.
//
//	now := timezone.Now()
//	start := timezone.At(date, clock)   // date + clock interpreted in the app zone
//	day, err := timezone.Parse(time.DateOnly, "2024-01-01")
package timezone
