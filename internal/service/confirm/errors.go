package confirm

import "errors"

var ErrInvalidToken = errors.New("confirmation token is invalid or expired")
