package cli

import "errors"

var errNotLoggedIn = errors.New("not logged in; run `liftoff login --email <email>` first")
