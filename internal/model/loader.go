// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "context"

// Loader reads a model document of one concrete format.
type Loader interface {
	Load(ctx context.Context, path string) (*System, error)
}
