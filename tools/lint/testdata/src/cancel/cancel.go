package cancel

import (
	"context"
	"time"
)

func bad() {
	ctx, _ := context.WithTimeout(context.Background(), time.Second) // want "the cancel function returned by context.WithTimeout should be called, not discarded, to avoid a context leak"
	_ = ctx
}

func good() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = ctx
}
