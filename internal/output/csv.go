package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter writes one row per year. It renders the withdrawal schedule,
// falling back to the reverse solver's requirement records and then to the
// build-up trajectory.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var err error
	switch {
	case report.Schedule != nil:
		err = writeRecordRows(w, report.Schedule.Records, report.Schedule.StartingCapital != nil)
	case report.Reverse != nil:
		err = writeRecordRows(w, report.Reverse.Records, false)
	case report.BuildUp != nil:
		err = writeTrajectoryRows(w, report.BuildUp.Trajectory)
	}
	if err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRecordRows(w *csv.Writer, records []domain.YearRecord, tracking bool) error {
	header := []string{"Index", "Year", "GrossWithdrawal", "SelfStatePension", "SelfFraction",
		"PartnerStatePension", "PartnerFraction", "PrivatePension", "NetWithdrawal", "PresentValue"}
	if tracking {
		header = append(header, "OpeningCapital", "Growth", "ClosingCapital")
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Index),
			strconv.Itoa(r.Year),
			r.GrossWithdrawal.StringFixed(2),
			r.SelfStatePension.Amount.StringFixed(2),
			r.SelfStatePension.Fraction.StringFixed(4),
			r.PartnerStatePension.Amount.StringFixed(2),
			r.PartnerStatePension.Fraction.StringFixed(4),
			r.PrivatePension.StringFixed(2),
			r.NetWithdrawal.StringFixed(2),
			r.PresentValue.StringFixed(2),
		}
		if tracking {
			row = append(row, optionalFixed(r.OpeningCapital), optionalFixed(r.Growth), optionalFixed(r.ClosingCapital))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeTrajectoryRows(w *csv.Writer, trajectory []domain.BuildUpYear) error {
	if err := w.Write([]string{"Index", "OpeningBalance", "Contribution", "Growth", "ClosingBalance"}); err != nil {
		return err
	}
	for _, y := range trajectory {
		row := []string{
			strconv.Itoa(y.Index),
			y.OpeningBalance.StringFixed(2),
			y.Contribution.StringFixed(2),
			y.Growth.StringFixed(2),
			y.ClosingBalance.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func optionalFixed(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
