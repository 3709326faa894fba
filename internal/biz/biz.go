package biz

import (
	"github.com/fieldops/wa-attendance-bot/internal/biz/usecase"
)

// Usecases contains all usecases
type Usecases struct {
	Summary  *usecase.SummaryUsecase
	Composer *usecase.ComposerUsecase
	Report   *usecase.ReportUsecase
}
