package usecase

import (
	"context"
	"fmt"

	"github.com/fieldops/wa-attendance-bot/internal/biz/domain"
	"github.com/fieldops/wa-attendance-bot/internal/biz/repo"
	"github.com/fieldops/wa-attendance-bot/internal/chart"
	"github.com/fieldops/wa-attendance-bot/internal/conf"
)

// maxButtons is the WhatsApp interactive-button limit
const maxButtons = 3

// maxRowTitle is the WhatsApp display limit for list row titles
const maxRowTitle = 24

// ComposerUsecase turns aggregation output into gateway message payloads
type ComposerUsecase struct {
	gateway  repo.GatewayRepo
	messages *conf.Messages

	// renderChart is swappable in tests
	renderChart func(title string, present, absent int) ([]byte, error)
}

// NewComposerUsecase creates a new composer usecase
func NewComposerUsecase(gateway repo.GatewayRepo, messages *conf.Messages) *ComposerUsecase {
	return &ComposerUsecase{
		gateway:     gateway,
		messages:    messages,
		renderChart: chart.AttendancePie,
	}
}

// SendText sends a plain text reply
func (uc *ComposerUsecase) SendText(ctx context.Context, to, body string) error {
	return uc.gateway.SendText(ctx, to, body)
}

// SendChartReport sends a chart image with the caption text. When the
// chart cannot be rendered or uploaded it falls back to sending the
// caption alone, so the user always gets the text summary.
func (uc *ComposerUsecase) SendChartReport(ctx context.Context, to, title, caption string, stats *domain.TeamStats) error {
	png, err := uc.renderChart(title, stats.Present, stats.Absent)
	if err != nil {
		fmt.Printf("[Composer] Chart render failed: %v\n", err)
	}
	if png == nil {
		return uc.gateway.SendText(ctx, to, uc.messages.Reports.NoChartFallback+caption)
	}

	mediaID, err := uc.gateway.UploadMedia(ctx, png)
	if err != nil {
		fmt.Printf("[Composer] Media upload failed: %v\n", err)
		return uc.gateway.SendText(ctx, to, uc.messages.Reports.ChartUploadFallback+caption)
	}
	return uc.gateway.SendImage(ctx, to, mediaID, caption)
}

// SendMenu sends a single-section interactive list. Row titles are
// truncated to the platform display limit; an empty row set sends
// nothing.
func (uc *ComposerUsecase) SendMenu(ctx context.Context, to, header, body, buttonLabel, sectionTitle string, rows []repo.Row) error {
	if len(rows) == 0 {
		return nil
	}
	truncated := make([]repo.Row, len(rows))
	for i, row := range rows {
		truncated[i] = repo.Row{ID: row.ID, Title: TruncateTitle(row.Title)}
	}
	sections := []repo.Section{{Title: sectionTitle, Rows: truncated}}
	return uc.gateway.SendList(ctx, to, header, body, buttonLabel, sections)
}

// SendButtons sends an interactive button reply. More than 3 buttons are
// truncated to the first 3; zero buttons sends nothing.
func (uc *ComposerUsecase) SendButtons(ctx context.Context, to, body string, buttons []repo.Button) error {
	if len(buttons) == 0 {
		return nil
	}
	if len(buttons) > maxButtons {
		buttons = buttons[:maxButtons]
	}
	return uc.gateway.SendButtons(ctx, to, body, buttons)
}

// TruncateTitle clamps a list row title to the platform display limit
func TruncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= maxRowTitle {
		return s
	}
	return string(runes[:maxRowTitle])
}
