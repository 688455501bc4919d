// Package errors turns pullsync failures into user-facing CLI errors.
//
// CLIError carries a message, optional details, and a suggestion. It
// unwraps to the original error, so errors.Is keeps matching the
// sentinels of the pullsync and forge packages.
//
//	res, err := resolver.Resolve(ctx, job)
//	if err != nil {
//	    return errors.WrapResolveError(err, job.String())
//	}
//
// Invalid configs list every validation problem in Details. API
// failures are classified by status code into ErrNotAuthenticated,
// ErrPermissionDenied and ErrRateLimited; network failures become
// ErrConnectionFailed. ExitCode maps each class to a process exit status.
package errors
