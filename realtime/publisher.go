package realtime

import "fmt"

// Publisher — контракт широковещательной рассылки. Публикация — best-effort:
// ошибка доставки никогда не откатывает породившую её мутацию.
type Publisher interface {
	Publish(channel string, eventType string, payload interface{})
}

// EventChannel возвращает имя канала событийной рассылки.
func EventChannel(eventID int) string {
	return fmt.Sprintf("event-%d", eventID)
}

// TeamChannel возвращает имя канала командного чата.
func TeamChannel(teamID int) string {
	return fmt.Sprintf("team-%d", teamID)
}
