// Package jobs provides scheduled background tasks for the fulfillment
// system, built on github.com/robfig/cron/v3.
//
// Two jobs exist:
//
//  1. OrderCompletionJob promotes delivered orders to completed once a grace
//     period has passed. The grace window gives customers time to report
//     problems before the order is closed out.
//  2. DeliveredPurgeJob removes old delivered orders from the store. It is
//     disabled by default and only runs when retention is configured, because
//     purging is irreversible.
//
// Jobs are managed through JobManager, which starts them together and stops
// any already running job when a later one fails to start.
package jobs
