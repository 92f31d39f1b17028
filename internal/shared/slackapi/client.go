package slackapi

import (
	"context"
	"strconv"
	"time"

	"github.com/samber/oops"
	"github.com/slack-go/slack"
)

const listPageSize = 200

// Channel is the minimal channel projection the application needs.
type Channel struct {
	ID   string
	Name string
}

// Message is a snapshot of a channel's most recent message.
type Message struct {
	Timestamp  time.Time
	ReplyCount int
}

// Client wraps the Slack Web API behind the three operations the
// application consumes: list channels, fetch the latest message, and
// send a direct message.
type Client struct {
	api *slack.Client
}

// New creates a Slack API client from a bot token.
func New(token string) *Client {
	return &Client{api: slack.New(token)}
}

// ListChannels returns every public and private channel visible to the
// bot, following pagination until the cursor is exhausted.
func (c *Client) ListChannels(ctx context.Context) ([]Channel, error) {
	var channels []Channel
	cursor := ""

	for {
		page, nextCursor, err := c.api.GetConversationsContext(ctx, &slack.GetConversationsParameters{
			Types:  []string{"public_channel", "private_channel"},
			Limit:  listPageSize,
			Cursor: cursor,
		})
		if err != nil {
			return nil, oops.With("cursor", cursor, "context", "failed to list conversations").Wrap(err)
		}

		for _, ch := range page {
			channels = append(channels, Channel{ID: ch.ID, Name: ch.Name})
		}

		if nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	return channels, nil
}

// LatestMessage fetches the most recent message in a channel. A nil
// message with a nil error means the channel has no messages at all.
func (c *Client) LatestMessage(ctx context.Context, channelID string) (*Message, error) {
	history, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Limit:     1,
	})
	if err != nil {
		return nil, oops.With("channel_id", channelID, "context", "failed to fetch conversation history").Wrap(err)
	}

	if len(history.Messages) == 0 {
		return nil, nil
	}

	msg := history.Messages[0]
	ts, err := parseSlackTimestamp(msg.Timestamp)
	if err != nil {
		return nil, oops.With("channel_id", channelID, "ts", msg.Timestamp, "context", "failed to parse message timestamp").Wrap(err)
	}

	return &Message{Timestamp: ts, ReplyCount: msg.ReplyCount}, nil
}

// SendDirectMessage posts a message to a user's DM channel. Slack
// accepts a user ID directly as the channel argument and opens the IM
// on demand.
func (c *Client) SendDirectMessage(ctx context.Context, userID, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, userID, slack.MsgOptionText(text, false))
	if err != nil {
		return oops.With("user_id", userID, "context", "failed to post direct message").Wrap(err)
	}

	return nil
}

// parseSlackTimestamp converts Slack's "1712345678.000200" message
// timestamps into time.Time.
func parseSlackTimestamp(ts string) (time.Time, error) {
	f, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return time.Time{}, err
	}

	sec := int64(f)
	nsec := int64((f - float64(sec)) * 1e9)
	return time.Unix(sec, nsec), nil
}
