package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"clarimed/config"
	"clarimed/models"
	"clarimed/services/consent"
	"clarimed/utils"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const TypeSubscriptionPoll = "subscription:poll"

// SubscriptionAPI is what the poll task needs from the upstream client.
type SubscriptionAPI interface {
	Subscription(ctx context.Context, token string) (*models.Subscription, error)
}

type subscriptionPollPayload struct {
	Token  string `json:"token"`
	PlanID string `json:"planId"`
}

func taskRedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}
}

// AsynqReconciler schedules post-checkout subscription polls.
type AsynqReconciler struct {
	client *asynq.Client
}

func NewAsynqReconciler() *AsynqReconciler {
	return &AsynqReconciler{client: asynq.NewClient(taskRedisOpts())}
}

// SchedulePoll enqueues the first poll shortly after the browser returns
// from checkout. Retries with backoff give the provider webhook time to
// land upstream.
func (r *AsynqReconciler) SchedulePoll(ctx context.Context, upstreamToken, planID string) error {
	payload, err := json.Marshal(subscriptionPollPayload{Token: upstreamToken, PlanID: planID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeSubscriptionPoll, payload)
	_, err = r.client.EnqueueContext(ctx, task,
		asynq.ProcessIn(5*time.Second),
		asynq.MaxRetry(8),
		asynq.Timeout(30*time.Second),
	)
	return err
}

// InitSubscriptionWorker runs the async worker in background.
func InitSubscriptionWorker(api SubscriptionAPI) {
	srv := asynq.NewServer(
		taskRedisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSubscriptionPoll, handleSubscriptionPoll(api))

	go func() {
		log.Println("[SubscriptionWorker] Starting async worker...")
		if err := srv.Run(mux); err != nil {
			utils.GetLogger().Error("Subscription worker stopped", zap.Error(err))
		}
	}()
}

// handleSubscriptionPoll checks whether the purchased plan is visible on
// the upstream subscription yet. Returning an error makes asynq retry with
// backoff until the webhook has been processed upstream.
func handleSubscriptionPoll(api SubscriptionAPI) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload subscriptionPollPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("invalid poll payload: %w", err)
		}

		sub, err := api.Subscription(ctx, payload.Token)
		if err != nil {
			return err
		}
		if sub.Status != "active" && sub.Status != "trialing" {
			return fmt.Errorf("subscription not active yet (status %s)", sub.Status)
		}
		if payload.PlanID != "" && sub.PlanID != payload.PlanID {
			return fmt.Errorf("subscription plan %s does not reflect purchase of %s yet", sub.PlanID, payload.PlanID)
		}

		utils.GetLogger().Info("Checkout reconciled",
			zap.String("plan", sub.PlanID),
			zap.String("status", sub.Status))
		return nil
	}
}

// InitConsentRefresh schedules the hourly consent-catalog refresh.
func InitConsentRefresh(svc consent.Service) *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := svc.Refresh(ctx); err != nil {
			utils.GetLogger().Warn("Consent catalog refresh failed", zap.Error(err))
		}
	}); err != nil {
		utils.GetLogger().Error("Failed to schedule consent refresh", zap.Error(err))
	}
	c.Start()
	return c
}
