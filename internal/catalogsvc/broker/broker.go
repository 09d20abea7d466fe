package broker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/avvvet/card-catalog/internal/catalogsvc/models"
	"github.com/avvvet/card-catalog/internal/catalogsvc/service"
	"github.com/avvvet/card-catalog/internal/catalogsvc/store"
	"github.com/avvvet/card-catalog/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const (
	CardCreatedTopic = "catalog.card.created"
	ServiceTopic     = "catalog.service"

	requestTimeout = 10 * time.Second
)

type Publisher interface {
	Publish(subject string, data []byte) error
}

type Broker struct {
	Conn        *nats.Conn
	CardService *service.CardService

	pub Publisher
}

func NewBroker(nc *nats.Conn, cardService *service.CardService) *Broker {
	return &Broker{
		Conn:        nc,
		CardService: cardService,
		pub:         nc,
	}
}

// CardCreated publishes card on CardCreatedTopic.
func (b *Broker) CardCreated(card models.Card) error {
	payload, err := comm.NewMessage(comm.TypeCardCreated, card)
	if err != nil {
		log.Errorf("error [CardCreated] unable to marshal card %d: %s", card.ID, err)
		return err
	}

	return b.Publish(CardCreatedTopic, payload)
}

// handles request messages coming on the service topic
func (b *Broker) handleMessage(msgNat *nats.Msg) {
	if msgNat.Reply == "" {
		log.Warnf("dropping message without reply subject on %s", msgNat.Subject)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	b.Publish(msgNat.Reply, b.handleRequest(ctx, msgNat.Data))
}

// handleRequest decodes a request envelope and returns the encoded reply.
func (b *Broker) handleRequest(ctx context.Context, data []byte) []byte {
	msg := &comm.Message{}
	if err := json.Unmarshal(data, msg); err != nil {
		log.Errorf("Error nats message %s", err)
		return errorReply("invalid message")
	}

	switch msg.Type {
	case comm.TypeGetCard:
		var request comm.CardRequest
		if err := json.Unmarshal(msg.Data, &request); err != nil || request.ID <= 0 {
			return errorReply("invalid card id")
		}

		view, err := b.CardService.GetCardByID(ctx, request.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errorReply(store.ErrNotFound.Error())
			}
			log.Errorf("Error [CardService.GetCardByID] %d %s", request.ID, err)
			return errorReply("unable to get card")
		}
		return reply(comm.TypeGetCardResponse, view)
	case comm.TypeListCards:
		cards, err := b.CardService.GetAllCards(ctx)
		if err != nil {
			log.Errorf("Error [CardService.GetAllCards] %s", err)
			return errorReply("unable to list cards")
		}
		return reply(comm.TypeListCardsResponse, cards)
	default:
		return errorReply("unknown message type " + msg.Type)
	}
}

func reply(t string, data interface{}) []byte {
	payload, err := comm.NewMessage(t, data)
	if err != nil {
		log.Errorf("error [reply] unable to marshal %s: %s", t, err)
		return errorReply("internal error")
	}
	return payload
}

func errorReply(msg string) []byte {
	payload, _ := comm.NewMessage(comm.TypeError, comm.ErrorData{Error: msg})
	return payload
}

// consume requests from other services, load balanced across instances
func (b *Broker) QueueSubscribeService(topic, queueGroup string) (*nats.Subscription, error) {
	sub, err := b.Conn.QueueSubscribe(topic, queueGroup, b.handleMessage)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.pub.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}
