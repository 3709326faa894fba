package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/fieldops/wa-attendance-bot/internal/biz/domain"
	"github.com/fieldops/wa-attendance-bot/internal/biz/repo"
	"github.com/fieldops/wa-attendance-bot/internal/biz/usecase"
	"github.com/fieldops/wa-attendance-bot/internal/conf"
	"github.com/fieldops/wa-attendance-bot/internal/dedup"
)

// Dispatcher orchestrates background processing of admitted inbound
// events. It owns the processed-id set and bounds the number of
// concurrently running tasks.
type Dispatcher struct {
	directoryRepo repo.DirectoryRepo
	reportUC      *usecase.ReportUsecase
	gateway       repo.GatewayRepo
	messages      *conf.Messages

	seen    *dedup.Set
	workers *semaphore.Weighted
	wg      sync.WaitGroup
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(
	directoryRepo repo.DirectoryRepo,
	reportUC *usecase.ReportUsecase,
	gateway repo.GatewayRepo,
	messages *conf.Messages,
	dedupCapacity int,
	maxWorkers int,
) *Dispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &Dispatcher{
		directoryRepo: directoryRepo,
		reportUC:      reportUC,
		gateway:       gateway,
		messages:      messages,
		seen:          dedup.New(dedupCapacity),
		workers:       semaphore.NewWeighted(int64(maxWorkers)),
	}
}

// Dispatch admits the message and, if it has not been seen before,
// processes it in the background. Returns whether the message was
// admitted. The caller's HTTP response never waits on processing.
func (d *Dispatcher) Dispatch(msg *domain.Message) bool {
	if !d.seen.Admit(msg.ID) {
		fmt.Printf("[Dispatch] Duplicate message ignored: %s\n", msg.ID)
		return false
	}

	taskID := uuid.NewString()[:8]
	d.wg.Add(1)
	go d.process(taskID, msg)
	return true
}

// Wait blocks until all in-flight tasks finish
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// process runs one background task. Nothing escapes the task boundary:
// all failures are logged here.
func (d *Dispatcher) process(taskID string, msg *domain.Message) {
	defer d.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[Dispatch] task=%s panic: %v\n", taskID, r)
		}
	}()

	ctx := context.Background()
	if err := d.workers.Acquire(ctx, 1); err != nil {
		fmt.Printf("[Dispatch] task=%s worker acquire failed: %v\n", taskID, err)
		return
	}
	defer d.workers.Release(1)

	user, err := d.directoryRepo.UserByPhone(ctx, msg.From)
	if err != nil {
		fmt.Printf("[Dispatch] task=%s user lookup failed: %v\n", taskID, err)
	}
	if user == nil {
		if err := d.gateway.SendText(ctx, msg.From, d.messages.Errors.NotRegistered); err != nil {
			fmt.Printf("[Dispatch] task=%s reply failed: %v\n", taskID, err)
		}
		return
	}

	sel := domain.ParseSelection(msg.SelectionID())
	if err := d.reportUC.Run(ctx, msg.From, user, sel); err != nil {
		fmt.Printf("[Dispatch] task=%s flow failed for role %s: %v\n", taskID, user.Role, err)
	}
}
