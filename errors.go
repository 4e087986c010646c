package constgen

import "errors"

// ErrNameCollision is returned when two declarations are registered under
// the same name within one generation run.
var ErrNameCollision = errors.New("name collision")
