package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type TestDeliverer struct {
	mock.Mock
}

func (td *TestDeliverer) Deliver(ctx context.Context, notif Notification) error {
	return td.Called(ctx, notif).Error(0)
}

func TestNoOpDeliverer(t *testing.T) {
	t.Parallel()
	var d Deliverer = &NoOpDeliverer{}
	assert.NoError(t, d.Deliver(context.Background(), Notification{Message: "Downloaded as PNG"}))
}
