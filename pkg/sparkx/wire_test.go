package sparkx

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var snakeCase = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

// Every exported field of a wire type carries an explicit snake_case name.
func TestWireTypes_SnakeCaseTags(t *testing.T) {
	types := []any{
		addressWire{}, Recipient{}, Attachment{}, Content{}, TemplateRef{}, RFC822Content{},
		Transmission{}, TransmissionOptions{}, SendResult{},
		Template{}, TemplatePatch{}, TemplateOptions{}, TemplatePreview{},
		RecipientList{}, RecipientListResult{},
		RelayWebhook{}, RelayMatch{},
		SendingDomain{}, SendingDomainStatus{}, SendingDomainResult{}, DKIM{}, sendingDomainWire{}, verifyWire{},
		Subaccount{}, SubaccountCreate{}, SubaccountCreateResult{}, SubaccountUpdate{},
		SuppressionEntry{},
		InboundDomain{},
		Webhook{}, WebhookResult{}, WebhookValidateResult{}, BatchStatus{}, EventClassDoc{}, EventDoc{},
		MessageEvent{}, WebhookPayload{},
		ErrorDetail{}, Link{}, IDResult{}, MessageResult{},
	}

	for _, v := range types {
		typ := reflect.TypeOf(v)
		t.Run(typ.Name(), func(t *testing.T) {
			checkTags(t, typ)
		})
	}
}

func checkTags(t *testing.T, typ reflect.Type) {
	t.Helper()
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, ok := f.Tag.Lookup("json")
		require.True(t, ok, "%s.%s has no json tag", typ.Name(), f.Name)
		name := strings.Split(tag, ",")[0]
		if name == "-" {
			continue
		}
		assert.Regexp(t, snakeCase, name, "%s.%s", typ.Name(), f.Name)

		if f.Type.Kind() == reflect.Struct && f.Type.Name() == "" {
			checkTags(t, f.Type)
		}
	}
}

func TestMessageEventsSearch_QueryKeys(t *testing.T) {
	q := MessageEventsSearch{
		BounceClasses:   []int{1},
		CampaignIDs:     []string{"c"},
		Events:          []string{"e"},
		FriendlyFroms:   []string{"f"},
		From:            "2016-01-01T00:00",
		MessageIDs:      []string{"m"},
		Page:            2,
		PerPage:         50,
		Reason:          "r",
		Recipients:      []string{"x@example.com"},
		TemplateIDs:     []string{"t"},
		Timezone:        "UTC",
		To:              "2016-02-01T00:00",
		TransmissionIDs: []string{"tx"},
	}.query().values()

	assert.Len(t, q, reflect.TypeOf(MessageEventsSearch{}).NumField(), "every field maps to a parameter")
	for key := range q {
		assert.Regexp(t, snakeCase, key)
	}
	assert.Equal(t, "tx", q.Get("transmission_ids"))
	assert.Equal(t, "50", q.Get("per_page"))
}

func TestSuppressionSearch_QueryKeys(t *testing.T) {
	q := SuppressionSearch{
		To:          "a",
		From:        "b",
		Domain:      "c",
		Cursor:      "d",
		Description: "e",
		Types:       []string{"transactional"},
		Sources:     []string{"Bounce Rule", "Manually Added"},
		Limit:       1,
		PerPage:     2,
	}.query().values()

	assert.Len(t, q, reflect.TypeOf(SuppressionSearch{}).NumField())
	for key := range q {
		assert.Regexp(t, snakeCase, key)
	}
	assert.Equal(t, "Bounce Rule,Manually Added", q.Get("sources"))
}

func TestParams_SkipsZeroValues(t *testing.T) {
	assert.Nil(t, params{}.set("a", "").int("b", 0).bool("c", false).list("d", nil).values())
}

func TestSendRequest_ListReferenceIsVerbatim(t *testing.T) {
	s := &TransmissionsService{}
	req, err := s.sendRequest(Transmission{
		Recipients: ListRecipients("my-list"),
		Content:    MessageContent{Template: &TemplateRef{TemplateID: "t"}},
	})
	require.NoError(t, err)

	data, err := json.Marshal(req.Body)
	require.NoError(t, err)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &body))
	assert.JSONEq(t, `{"list_id":"my-list"}`, string(body["recipients"]))
	assert.Equal(t, "/transmissions", req.URI)
	assert.Equal(t, "POST", req.Method)
}

func TestSendingDomainParams_Wire(t *testing.T) {
	data, err := json.Marshal(SendingDomainParams{Domain: "example.com", GenerateDKIM: boolPtr(true)}.wire(true))
	require.NoError(t, err)
	assert.JSONEq(t, `{"domain":"example.com","generate_dkim":true}`, string(data))

	data, err = json.Marshal(SendingDomainParams{Domain: "example.com", GenerateDKIM: boolPtr(false)}.wire(false))
	require.NoError(t, err)
	assert.JSONEq(t, `{"generate_dkim":false}`, string(data))
}

func TestTemplateUpdate_Request(t *testing.T) {
	req, err := TemplateUpdate{ID: "a/b", Publish: true}.request()
	require.NoError(t, err)
	assert.Equal(t, "/templates/a%2Fb", req.URI)
	assert.Equal(t, map[string]bool{"published": true}, req.Body)
}

func TestAddress_JSON(t *testing.T) {
	data, err := json.Marshal(Address{Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, `"a@example.com"`, string(data))

	data, err = json.Marshal(Address{Email: "a@example.com", Name: "A", HeaderTo: "b@example.com"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@example.com","name":"A","header_to":"b@example.com"}`, string(data))

	var a Address
	require.NoError(t, json.Unmarshal([]byte(`{"email":"x@example.com","name":"X"}`), &a))
	assert.Equal(t, Address{Email: "x@example.com", Name: "X"}, a)
	require.NoError(t, json.Unmarshal([]byte(`"y@example.com"`), &a))
	assert.Equal(t, Address{Email: "y@example.com"}, a)
}

func TestRecipients_JSON(t *testing.T) {
	data, err := json.Marshal(Recipients{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	_, err = json.Marshal(Recipients{ListID: "l", Inline: []Recipient{{}}})
	assert.Error(t, err)

	var r Recipients
	require.NoError(t, json.Unmarshal([]byte(`[{"address":"a@example.com"}]`), &r))
	require.Len(t, r.Inline, 1)
	assert.Equal(t, "a@example.com", r.Inline[0].Address.Email)
}

func TestMessageContent_JSON(t *testing.T) {
	var c MessageContent
	require.NoError(t, json.Unmarshal([]byte(`{"email_rfc822":"From: a"}`), &c))
	require.NotNil(t, c.RFC822)
	assert.Nil(t, c.Inline)

	require.NoError(t, json.Unmarshal([]byte(`{"from":"a@example.com","subject":"s","text":"t"}`), &c))
	require.NotNil(t, c.Inline)
	assert.Nil(t, c.RFC822)
	assert.Equal(t, "s", c.Inline.Subject)

	data, err := json.Marshal(MessageContent{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestFlexInt(t *testing.T) {
	var v struct {
		A FlexInt `json:"a"`
		B FlexInt `json:"b"`
		C FlexInt `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":5,"b":"7","c":""}`), &v))
	assert.Equal(t, FlexInt(5), v.A)
	assert.Equal(t, FlexInt(7), v.B)
	assert.Equal(t, FlexInt(0), v.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":"seven"}`), &v))
}

func boolPtr(b bool) *bool { return &b }
