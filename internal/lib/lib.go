// Package lib groups supporting libraries that do not fit strictly into the
// handler/service/repository layers: credential sign-in (auth), the Redis
// view cache (cache), background jobs on Asynq (job), Resend email (email),
// and small helpers (utils).
package lib
