// Package job runs background tasks on river (Postgres-backed queue).
//
// Tasks are plain structs with a Name and a typed Handle method; periodic
// tasks add a cron Schedule. All tasks share one river job kind and are
// dispatched by name.
//
//	mgr, err := job.NewManager(pool,
//	    job.WithLogger(log),
//	    job.WithTask(contact.NewNotifyOwnerTask(notifier, 10)),
//	    job.WithScheduledTask(content.NewPruneEventsTask(q, retention, schedule)),
//	)
//
// Insert a job in the same transaction as the row it refers to:
//
//	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//	    if _, err := repository.New(tx).CreateContact(ctx, params); err != nil {
//	        return err
//	    }
//	    return mgr.EnqueueTx(ctx, tx, "contact.notify_owner", payload, job.MaxAttempts(10))
//	})
//
// Failed jobs retry with river's backoff. Errors wrapped with Permanent, and
// payloads that fail to decode, cancel the job instead.
package job
