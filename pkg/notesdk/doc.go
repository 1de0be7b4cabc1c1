/*
Package notesdk is the client SDK for the notes service.

# Overview

A Client wraps the notes HTTP API and keeps the session (access token and
refresh token) in a sessionstore.Store:

	store := sessionstore.NewFileStore(path)
	client := notesdk.New("http://localhost:8080", store,
		notesdk.WithLoginRequired(func(err error) {
			fmt.Fprintln(os.Stderr, "session expired, please sign in again")
		}),
	)

	if _, err := client.SignIn(ctx, "alice", "pw"); err != nil {
		return err
	}
	notes, err := client.ActiveNotes(ctx)

# Silent Token Renewal

Every authenticated call goes through Client.Do. When the server answers 401
the client asks its Refresher for a new access token and replays the request
exactly once with it.

The Refresher guarantees that at most one POST /auth/refresh is in flight per
client. Goroutines that hit a 401 while a refresh is running queue behind it
and receive the same token (or the same error) once it completes:

	Idle --RequestRefresh--> Refreshing --success--> Idle  (token stored)
	                                    --failure--> Idle  (session cleared)

When the refresh fails the session is cleared, OnLoginRequired is called and
the error matches ErrRefreshFailed. Without a stored refresh token the error is
ErrNoRefreshToken and no request is made.

# Errors

Non-2xx responses are returned as *APIError. Use errors.Is with the status
sentinels to branch:

	_, err := client.GetNote(ctx, 42)
	switch {
	case errors.Is(err, notesdk.ErrNotFound):
		// no such note
	case errors.Is(err, notesdk.ErrRefreshFailed):
		// sign in again
	case errors.Is(err, notesdk.ErrNetworkFailure):
		// server unreachable
	}
*/
package notesdk
