package sms

import "fmt"

// Message templates sent to farmers through the downstream notifier.
// Wording matches what the collection centers already print on receipts.

func WelcomeMessage(name string) string {
	return fmt.Sprintf("Welcome to DairyCollect, %s! Your farmer account is now active. Submit milk at your nearest collection point.", name)
}

func MilkAcceptedMessage(liters float64) string {
	return fmt.Sprintf("Your milk submission of %.1fL has been accepted. It will be included in your current payment cycle.", liters)
}

func MilkRejectedMessage(liters float64) string {
	return fmt.Sprintf("Your milk submission of %.1fL was rejected. Please contact your collection point for details.", liters)
}

func PaymentBookedMessage(amount float64, reference string) string {
	return fmt.Sprintf("A payment of %.2f has been booked for your milk deliveries. Ref: %s", amount, reference)
}

func LoanApprovedMessage(amount float64) string {
	return fmt.Sprintf("Good news! Your loan request of %.2f has been approved.", amount)
}

func LoanRejectedMessage() string {
	return "Your loan request was not approved at this time. You can request again once your milk volume increases."
}
