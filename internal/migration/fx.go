package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	chatdomain "github.com/blessnhq/blessn/internal/chat/domain"
	consumerdomain "github.com/blessnhq/blessn/internal/consumer/domain"
	contributordomain "github.com/blessnhq/blessn/internal/contributor/domain"
	feedbackdomain "github.com/blessnhq/blessn/internal/feedback/domain"
	moderationdomain "github.com/blessnhq/blessn/internal/moderation/domain"
	notificationdomain "github.com/blessnhq/blessn/internal/notification/domain"
	orderdomain "github.com/blessnhq/blessn/internal/order/domain"
	paymentdomain "github.com/blessnhq/blessn/internal/payment/domain"
	platformfeedomain "github.com/blessnhq/blessn/internal/platformfee/domain"
	postdomain "github.com/blessnhq/blessn/internal/post/domain"
	referencedomain "github.com/blessnhq/blessn/internal/reference/domain"
	socialdomain "github.com/blessnhq/blessn/internal/social/domain"
	userdomain "github.com/blessnhq/blessn/internal/user/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB) error {
		// Versioned SQL migrations target postgres. Other dialects (sqlite in
		// tests, mysql deployments) derive the schema from the models.
		if conn.Dialector.Name() != "postgres" {
			return AutoMigrate(conn)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)

// AutoMigrate creates the schema from the gorm models.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&userdomain.User{},
		&contributordomain.Contributor{},
		&contributordomain.ContributorPhotoVideo{},
		&consumerdomain.Consumer{},
		&referencedomain.Category{},
		&referencedomain.Occasion{},
		&moderationdomain.BannedWord{},
		&platformfeedomain.BookingFee{},
		&orderdomain.Order{},
		&orderdomain.Review{},
		&paymentdomain.Payment{},
		&chatdomain.ChatChannel{},
		&chatdomain.ChatMessage{},
		&socialdomain.Follow{},
		&socialdomain.Block{},
		&postdomain.Post{},
		&postdomain.PostFile{},
		&postdomain.Like{},
		&postdomain.Comment{},
		&postdomain.CommentLike{},
		&notificationdomain.Notification{},
		&feedbackdomain.Feedback{},
	)
}
