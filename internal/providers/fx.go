package providers

import (
	"go.uber.org/fx"

	"github.com/blessnhq/blessn/internal/providers/chat"
	"github.com/blessnhq/blessn/internal/providers/payment"
	"github.com/blessnhq/blessn/internal/providers/push"
)

var Module = fx.Module("providers",
	fx.Provide(payment.NewStripeGateway),
	fx.Provide(chat.NewPubNubPublisher),
	fx.Provide(push.NewFCMSender),
)
