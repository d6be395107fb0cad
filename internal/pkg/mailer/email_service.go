package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendBookingNotification(toEmail string, details BookingDetails) error
	SendCancellationNotification(toEmail string, details BookingDetails) error
}

type BookingDetails struct {
	PatientName  string
	PatientPhone string
	Service      string
	Date         string
	Time         string
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendBookingNotification(toEmail string, details BookingDetails) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("New booking: %s on %s", details.Service, details.Date))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New Appointment Booked</h2>
			<table style="border-collapse: collapse;">
				<tr><td style="padding: 4px 12px 4px 0;"><b>Patient</b></td><td>%s</td></tr>
				<tr><td style="padding: 4px 12px 4px 0;"><b>Phone</b></td><td>%s</td></tr>
				<tr><td style="padding: 4px 12px 4px 0;"><b>Service</b></td><td>%s</td></tr>
				<tr><td style="padding: 4px 12px 4px 0;"><b>Date</b></td><td>%s</td></tr>
				<tr><td style="padding: 4px 12px 4px 0;"><b>Time</b></td><td>%s</td></tr>
			</table>
			<p>This appointment was created by the virtual assistant.</p>
		</div>
	`, details.PatientName, details.PatientPhone, details.Service, details.Date, details.Time)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send booking notification to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Booking notification sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendCancellationNotification(toEmail string, details BookingDetails) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Cancelled: %s on %s", details.Service, details.Date))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Appointment Cancelled</h2>
			<p>The following appointment has been cancelled and its slot released:</p>
			<table style="border-collapse: collapse;">
				<tr><td style="padding: 4px 12px 4px 0;"><b>Patient</b></td><td>%s</td></tr>
				<tr><td style="padding: 4px 12px 4px 0;"><b>Service</b></td><td>%s</td></tr>
				<tr><td style="padding: 4px 12px 4px 0;"><b>Date</b></td><td>%s</td></tr>
				<tr><td style="padding: 4px 12px 4px 0;"><b>Time</b></td><td>%s</td></tr>
			</table>
		</div>
	`, details.PatientName, details.Service, details.Date, details.Time)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send cancellation notification to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Cancellation notification sent to %s\n", toEmail)
	return nil
}
