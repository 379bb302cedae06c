package consumers

import (
	"encoding/json"
	"log"

	"backoffice-service/config"
	"backoffice-service/database"
	"backoffice-service/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

func StartOrderConsumer(ch *amqp.Channel, cfg *config.Config) {
	msgs, err := ch.Consume(
		cfg.OrderQueue,
		"backoffice-service", // consumer tag
		false,                // auto-ack
		false,                // exclusive
		false,                // no-local
		false,                // no-wait
		nil,
	)
	if err != nil {
		log.Printf("Failed to register order consumer: %v", err)
		return
	}

	go func() {
		for msg := range msgs {
			processOrderMessage(msg, cfg)
		}
	}()

	dlqMsgs, err := ch.Consume(
		cfg.DeadLetterQueue,
		"backoffice-service-dlq", // consumer tag
		false,                    // auto-ack
		false,                    // exclusive
		false,                    // no-local
		false,                    // no-wait
		nil,
	)
	if err != nil {
		log.Printf("Failed to register DLQ consumer: %v", err)
		return
	}

	go func() {
		for msg := range dlqMsgs {
			processDeadLetterMessage(msg)
		}
	}()
}

func processOrderMessage(msg amqp.Delivery, cfg *config.Config) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in message processing: %v", r)
		}
	}()

	var event models.OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Invalid event payload: %s", msg.Body)
		err := msg.Nack(false, false)
		if err != nil {
			return
		}
		return
	}

	log.Printf("Processing order event: ID=%d, Type=%s", event.OrderID, event.Type)

	switch event.Type {
	case "order_created", "line_item_created", "line_item_updated":
		alertLowStock(event.OrderID, cfg.LowStockLevel)
	case "order_deleted", "line_item_deleted":
		// Stock only went up; nothing to alert on.
	default:
		log.Printf("Unknown event type: %s", event.Type)
	}

	err := msg.Ack(false)
	if err != nil {
		return
	}
}

func processDeadLetterMessage(msg amqp.Delivery) {
	log.Printf("Received dead letter: %s", msg.Body)
	err := msg.Ack(false)
	if err != nil {
		return
	}
}

// alertLowStock flags products on the order whose stock dropped below the
// configured threshold.
func alertLowStock(orderID, threshold int) {
	rows, err := database.DB.Query(`
		SELECT DISTINCT p.id, p.name, p.stock
		FROM order_line_items li
		JOIN products p ON p.id = li.product_id
		WHERE li.order_id = ? AND p.stock < ?
	`, orderID, threshold)
	if err != nil {
		log.Printf("Failed to check stock levels for order %d: %v", orderID, err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    int
			name  string
			stock int
		)
		if err := rows.Scan(&id, &name, &stock); err != nil {
			log.Printf("Error scanning low stock row: %v", err)
			continue
		}
		log.Printf("Low stock alert: product %d (%s) has %d left", id, name, stock)
	}
}
