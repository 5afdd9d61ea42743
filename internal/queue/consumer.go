package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// ActivityLogName is the file, inside the configured directory, that the
// consumer appends to.
const ActivityLogName = "activity.log"

// StartActivityConsumer connects to RabbitMQ, declares the client queue
// (durable) and consumes it. Each event is appended to <dir>/activity.log as
// one line. The function runs a reconnect loop and never returns; processing
// errors are logged and the offending message is rejected.
func StartActivityConsumer(url, dir string) {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("activity-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        if err := consumeLoop(conn, dir); err != nil {
            log.Printf("activity-consumer: consume loop ended: %v; reconnecting", err)
            _ = conn.Close()
            time.Sleep(2 * time.Second)
        }
    }
}

func consumeLoop(conn *amqp.Connection, dir string) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("activity-consumer: set QoS failed: %v", err)
    }

    if _, err := ch.QueueDeclare(ClientQueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(ClientQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleMessage(d.Body, dir); err != nil {
            log.Printf("activity-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, dir string) error {
    var ev ClientEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.Type == "" {
        return errors.New("event type missing")
    }
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", dir, err)
    }
    f, err := os.OpenFile(filepath.Join(dir, ActivityLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(formatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

func formatLine(ev ClientEvent) string {
    switch ev.Type {
    case EventClientSaved:
        return fmt.Sprintf("[%s] Client saved | scope=%s | client_id=%d | client=%q | destination=%q | budget=%.0f | category=%s\n",
            ev.OccurredAt, ev.Scope, ev.ClientID, ev.ClientName, ev.Destination, ev.Budget, ev.Category)
    case EventClientDeleted:
        return fmt.Sprintf("[%s] Client deleted | scope=%s | client_id=%d\n", ev.OccurredAt, ev.Scope, ev.ClientID)
    default:
        return fmt.Sprintf("[%s] %s | scope=%s | client_id=%d\n", ev.OccurredAt, ev.Type, ev.Scope, ev.ClientID)
    }
}
