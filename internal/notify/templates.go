package notify

import (
	"fmt"

	"membership-app/internal/domain/appointments"
	"membership-app/internal/domain/billing"
	"membership-app/internal/domain/events"
	"membership-app/internal/domain/memberships"
	"membership-app/internal/domain/users"
)

func wrapHTML(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>%s</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
%s
<hr>
<p style="font-size: 12px; color: #888;">RelaticPanama - Sistema de Membresía</p>
</div>
</body>
</html>`, title, body)
}

func WelcomeEmail(user *users.User) (string, string) {
	subject := "Bienvenido a RelaticPanama"
	body := fmt.Sprintf(`<h2>¡Bienvenido!</h2>
<p>Hola %s,</p>
<p>Tu cuenta fue creada exitosamente. Explora nuestros planes de membresía para acceder a todos los beneficios.</p>`,
		user.FirstName)
	return subject, wrapHTML(subject, body)
}

func PaymentConfirmationEmail(user *users.User, payment *billing.Payment, sub *memberships.Subscription) (string, string) {
	subject := "Confirmación de Pago - RelaticPanama"
	body := fmt.Sprintf(`<h2>¡Pago Confirmado!</h2>
<p>Hola %s,</p>
<p>Tu pago por la membresía %s ha sido procesado exitosamente.</p>
<ul>
<li>Membresía: %s</li>
<li>Monto: $%.2f</li>
<li>Fecha: %s</li>
<li>Válida hasta: %s</li>
</ul>
<p>Ya puedes acceder a todos los beneficios de tu membresía.</p>`,
		user.FirstName,
		payment.MembershipType,
		payment.MembershipType,
		float64(payment.AmountCents)/100,
		payment.CreatedAt.Format("02/01/2006"),
		sub.EndDate.Format("02/01/2006"))
	return subject, wrapHTML(subject, body)
}

func MembershipExpiringEmail(user *users.User, sub *memberships.Subscription, daysLeft int) (string, string) {
	subject := fmt.Sprintf("Tu Membresía Expirará en %d Días - RelaticPanama", daysLeft)
	body := fmt.Sprintf(`<h2>Tu membresía está por expirar</h2>
<p>Hola %s,</p>
<p>Tu membresía %s expira el %s (%d días restantes). Renueva a tiempo para no perder acceso a tus beneficios.</p>`,
		user.FirstName,
		sub.MembershipType,
		sub.EndDate.Format("02/01/2006"),
		daysLeft)
	return subject, wrapHTML(subject, body)
}

func MembershipExpiredEmail(user *users.User, sub *memberships.Subscription) (string, string) {
	subject := "Tu Membresía Ha Expirado - RelaticPanama"
	body := fmt.Sprintf(`<h2>Tu membresía ha expirado</h2>
<p>Hola %s,</p>
<p>Tu membresía %s expiró el %s. Puedes renovarla en cualquier momento desde tu panel.</p>`,
		user.FirstName,
		sub.MembershipType,
		sub.EndDate.Format("02/01/2006"))
	return subject, wrapHTML(subject, body)
}

func EventRegistrationEmail(user *users.User, event *events.Event, reg *events.EventRegistration) (string, string) {
	subject := fmt.Sprintf("Registro Confirmado: %s", event.Title)
	statusLine := "Tu registro está confirmado."
	if reg.Status == events.RegistrationStatusPending {
		statusLine = "Tu registro está pendiente de confirmación de pago."
	}
	body := fmt.Sprintf(`<h2>Registro al evento</h2>
<p>Hola %s,</p>
<p>%s</p>
<ul>
<li>Evento: %s</li>
<li>Referencia: %s</li>
<li>Precio: $%.2f</li>
</ul>`,
		user.FirstName,
		statusLine,
		event.Title,
		reg.Reference,
		reg.FinalPrice)
	return subject, wrapHTML(subject, body)
}

func EventCancellationEmail(user *users.User, event *events.Event) (string, string) {
	subject := fmt.Sprintf("Cancelación de Registro: %s", event.Title)
	body := fmt.Sprintf(`<h2>Registro cancelado</h2>
<p>Hola %s,</p>
<p>Tu registro al evento <strong>%s</strong> ha sido cancelado.</p>`,
		user.FirstName,
		event.Title)
	return subject, wrapHTML(subject, body)
}

func AppointmentBookedEmail(user *users.User, appt *appointments.Appointment, typeName string) (string, string) {
	subject := "Cita Registrada - RelaticPanama"
	body := fmt.Sprintf(`<h2>Tu cita fue registrada</h2>
<p>Hola %s,</p>
<p>Tu cita está pendiente de confirmación del asesor.</p>
<ul>
<li>Servicio: %s</li>
<li>Referencia: %s</li>
<li>Fecha: %s</li>
<li>Precio: $%.2f</li>
</ul>`,
		user.FirstName,
		typeName,
		appt.Reference,
		appt.StartDatetime.Format("02/01/2006 15:04"),
		appt.FinalPrice)
	return subject, wrapHTML(subject, body)
}

func AppointmentConfirmationEmail(user *users.User, appt *appointments.Appointment, typeName string) (string, string) {
	subject := "Cita Confirmada - RelaticPanama"
	body := fmt.Sprintf(`<h2>Tu cita fue confirmada</h2>
<p>Hola %s,</p>
<ul>
<li>Servicio: %s</li>
<li>Referencia: %s</li>
<li>Fecha: %s</li>
</ul>
<p>¡Te esperamos!</p>`,
		user.FirstName,
		typeName,
		appt.Reference,
		appt.StartDatetime.Format("02/01/2006 15:04"))
	return subject, wrapHTML(subject, body)
}

func AppointmentCancellationEmail(user *users.User, appt *appointments.Appointment, reason string) (string, string) {
	subject := "Cita Cancelada - RelaticPanama"
	body := fmt.Sprintf(`<h2>Cita cancelada</h2>
<p>Hola %s,</p>
<p>Tu cita %s del %s fue cancelada.</p>
<p>Motivo: %s</p>`,
		user.FirstName,
		appt.Reference,
		appt.StartDatetime.Format("02/01/2006 15:04"),
		reason)
	return subject, wrapHTML(subject, body)
}

func AppointmentReminderEmail(user *users.User, appt *appointments.Appointment, typeName string, hoursBefore int) (string, string) {
	subject := fmt.Sprintf("Recordatorio: Cita en %d horas - RelaticPanama", hoursBefore)
	body := fmt.Sprintf(`<h2>Recordatorio de cita</h2>
<p>Hola %s,</p>
<p>Tienes una cita próxima:</p>
<ul>
<li>Servicio: %s</li>
<li>Fecha: %s</li>
</ul>`,
		user.FirstName,
		typeName,
		appt.StartDatetime.Format("02/01/2006 15:04"))
	return subject, wrapHTML(subject, body)
}
