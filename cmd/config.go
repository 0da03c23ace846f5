package cmd

// Config carries all environment-driven settings of the application.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RabbitMQURL            string
	RefundServiceURL       string
	NotificationServiceURL string

	// ReturnWindowDays is how long after delivery a buyer may open a case.
	ReturnWindowDays int

	// DeliveryAutoConfirmDays is how long a sub-order may sit in Shipped
	// before the system confirms delivery on the buyer's behalf.
	DeliveryAutoConfirmDays int

	// DeliveryConfirmCron schedules the automatic confirmation job.
	DeliveryConfirmCron string
}
