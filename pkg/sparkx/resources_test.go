package sparkx_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/Abraxas-365/sparkx/pkg/ptrx"
	"github.com/Abraxas-365/sparkx/pkg/sparkx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransmissions_SendToStoredList(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK,
		`{"results":{"total_rejected_recipients":0,"total_accepted_recipients":12,"id":"11668787484950529"}}`)

	res, err := client.Transmissions.Send(context.Background(), sparkx.Transmission{
		CampaignID: "spring",
		Recipients: sparkx.ListRecipients("my-list"),
		Content: sparkx.MessageContent{
			Inline: &sparkx.Content{
				From:    sparkx.Address{Email: "news@example.com", Name: "News"},
				Subject: "Hello",
				HTML:    "<p>hi</p>",
			},
		},
	}, sparkx.WithNumRcptErrors(3))

	require.NoError(t, err)
	assert.Equal(t, 12, res.Results.TotalAcceptedRecipients)
	assert.Equal(t, "11668787484950529", res.Results.ID)

	got := api.last()
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/v1/transmissions", got.Path)
	assert.Equal(t, "3", got.Query.Get("num_rcpt_errors"))
	assert.Equal(t, map[string]any{"list_id": "my-list"}, got.Body["recipients"])
	assert.Equal(t, "spring", got.Body["campaign_id"])

	content := got.Body["content"].(map[string]any)
	assert.Equal(t, map[string]any{"email": "news@example.com", "name": "News"}, content["from"])
	assert.Equal(t, "<p>hi</p>", content["html"])
}

func TestTransmissions_SendInlineRecipientsAndTemplate(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK, `{"results":{"id":"1"}}`)

	_, err := client.Transmissions.Send(context.Background(), sparkx.Transmission{
		Recipients: sparkx.InlineRecipients(sparkx.Recipient{
			Address:          sparkx.Address{Email: "a@example.com"},
			SubstitutionData: map[string]any{"first_name": "Ada"},
		}),
		Content: sparkx.MessageContent{Template: &sparkx.TemplateRef{TemplateID: "welcome"}},
		Options: &sparkx.TransmissionOptions{Sandbox: ptrx.Bool(true)},
	})
	require.NoError(t, err)

	got := api.last()
	recipients := got.Body["recipients"].([]any)
	require.Len(t, recipients, 1)
	first := recipients[0].(map[string]any)
	assert.Equal(t, "a@example.com", first["address"])
	assert.Equal(t, map[string]any{"first_name": "Ada"}, first["substitution_data"])
	assert.Equal(t, map[string]any{"template_id": "welcome"}, got.Body["content"])
	assert.Equal(t, map[string]any{"sandbox": true}, got.Body["options"])
	assert.Empty(t, got.Query)
}

func TestTransmissions_SendValidatesContent(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK, `{}`)

	_, err := client.Transmissions.Send(context.Background(), sparkx.Transmission{Recipients: sparkx.To("a@example.com")})
	assert.ErrorIs(t, err, sparkx.ErrUsage)

	_, err = client.Transmissions.Send(context.Background(), sparkx.Transmission{
		Recipients: sparkx.To("a@example.com"),
		Content: sparkx.MessageContent{
			Template: &sparkx.TemplateRef{TemplateID: "x"},
			RFC822:   &sparkx.RFC822Content{EmailRFC822: "raw"},
		},
	})
	assert.ErrorIs(t, err, sparkx.ErrUsage)
	assert.Zero(t, api.count())
}

func TestTransmissions_AllAndFind(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK,
		`{"results":[{"id":"1","state":"Success","recipients":{"list_id":"l"},"content":{"template_id":"t"}}]}`)

	res, err := client.Transmissions.All(context.Background(), sparkx.TransmissionFilter{CampaignID: "c", TemplateID: "t"})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "l", res.Results[0].Recipients.ListID)
	require.NotNil(t, res.Results[0].Content.Template)
	assert.Equal(t, "t", res.Results[0].Content.Template.TemplateID)
	assert.Equal(t, "c", api.last().Query.Get("campaign_id"))
	assert.Equal(t, "t", api.last().Query.Get("template_id"))

	_, err = client.Transmissions.Find(context.Background(), "")
	assert.ErrorIs(t, err, sparkx.ErrUsage)
}

func TestSendingDomains_CreateGeneratesDKIM(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK,
		`{"results":{"message":"Successfully Created domain.","domain":"mail.example.com"}}`)

	res, err := client.SendingDomains.Create(context.Background(), sparkx.SendingDomainParams{
		Domain:       "mail.example.com",
		GenerateDKIM: ptrx.Bool(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "mail.example.com", res.Results.Domain)

	got := api.last()
	assert.Equal(t, "/api/v1/sending-domains", got.Path)
	assert.Equal(t, map[string]any{"domain": "mail.example.com", "generate_dkim": true}, got.Body)
	assert.NotContains(t, got.Body, "dkim")
}

func TestSendingDomains_UpdateAndVerify(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK, `{"results":{"ownership_verified":true,"dkim_status":"valid"}}`)
	ctx := context.Background()

	_, err := client.SendingDomains.Update(ctx, sparkx.SendingDomainParams{
		Domain:         "mail.example.com",
		TrackingDomain: "click.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, api.last().Method)
	assert.Equal(t, "/api/v1/sending-domains/mail.example.com", api.last().Path)
	assert.Equal(t, map[string]any{"tracking_domain": "click.example.com"}, api.last().Body)

	res, err := client.SendingDomains.Verify(ctx, sparkx.VerifyParams{Domain: "mail.example.com", DKIMVerify: true})
	require.NoError(t, err)
	assert.True(t, res.Results.OwnershipVerified)
	assert.Equal(t, "/api/v1/sending-domains/mail.example.com/verify", api.last().Path)
	assert.Equal(t, map[string]any{"dkim_verify": true}, api.last().Body)
}

func TestSuppressionList_Search(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK,
		`{"results":[{"recipient":"a@example.com","type":"transactional","source":"Manually Added"}]}`)

	res, err := client.SuppressionList.Search(context.Background(), sparkx.SuppressionSearch{
		Types: []string{"transactional"},
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "a@example.com", res.Results[0].Recipient)

	got := api.last()
	assert.Equal(t, "/api/v1/suppression-list", got.Path)
	assert.Equal(t, "transactional", got.Query.Get("types"))
	assert.Equal(t, "10", got.Query.Get("limit"))
	assert.Len(t, got.Query, 2)
}

func TestSuppressionList_SearchJoinsTypes(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK, `{"results":[]}`)

	_, err := client.SuppressionList.Search(context.Background(), sparkx.SuppressionSearch{
		Types: []string{"transactional", "non_transactional"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"transactional,non_transactional"}, api.last().Query["types"])
}

func TestSuppressionList_StatusAndUpsert(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK, `{"results":[{"recipient":"a+b@example.com","type":"transactional"}]}`)
	ctx := context.Background()

	status, err := client.SuppressionList.CheckStatus(ctx, "a+b@example.com")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, api.last().Method)
	assert.Equal(t, "/api/v1/suppression-list/a+b@example.com", api.last().Path)
	require.Len(t, status.Results, 1)
	assert.Equal(t, "transactional", status.Results[0].Type)

	_, err = client.SuppressionList.RemoveStatus(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, api.last().Method)

	api.respond(http.StatusOK, `{"results":{"message":"Suppression List successfully updated"}}`)
	res, err := client.SuppressionList.Upsert(ctx, sparkx.SuppressionEntry{
		Recipient: "a@example.com",
		Type:      "non_transactional",
	})
	require.NoError(t, err)
	assert.Equal(t, "Suppression List successfully updated", res.Results.Message)
	assert.Equal(t, http.MethodPut, api.last().Method)
	assert.Equal(t, []any{map[string]any{"recipient": "a@example.com", "type": "non_transactional"}}, api.last().Body["recipients"])

	_, err = client.SuppressionList.Upsert(ctx)
	assert.ErrorIs(t, err, sparkx.ErrUsage)
}

func TestTemplates_Operations(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK, `{"results":{"id":"welcome"}}`)
	ctx := context.Background()

	_, err := client.Templates.Find(ctx, "welcome", true)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/templates/welcome", api.last().Path)
	assert.Equal(t, "true", api.last().Query.Get("draft"))

	_, err = client.Templates.Create(ctx, sparkx.Template{
		ID:   "welcome",
		Name: "Welcome",
		Content: &sparkx.MessageContent{Inline: &sparkx.Content{
			From:    sparkx.Address{Email: "hi@example.com"},
			Subject: "Welcome {{name}}",
			Text:    "Hi",
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, api.last().Method)
	assert.Equal(t, "Welcome", api.last().Body["name"])
	assert.Equal(t, "hi@example.com", api.last().Body["content"].(map[string]any)["from"])

	_, err = client.Templates.Update(ctx, sparkx.TemplateUpdate{
		ID:              "welcome",
		UpdatePublished: true,
		Patch:           &sparkx.TemplatePatch{Description: "new"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, api.last().Method)
	assert.Equal(t, "true", api.last().Query.Get("update_published"))
	assert.Equal(t, map[string]any{"description": "new"}, api.last().Body)

	_, err = client.Templates.Update(ctx, sparkx.TemplateUpdate{ID: "welcome", Publish: true})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"published": true}, api.last().Body)
	assert.Empty(t, api.last().Query)

	_, err = client.Templates.Preview(ctx, "welcome", false, map[string]any{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/templates/welcome/preview", api.last().Path)
	assert.Equal(t, "false", api.last().Query.Get("draft"))
	assert.Equal(t, map[string]any{"substitution_data": map[string]any{"name": "Ada"}}, api.last().Body)
}

func TestTemplates_UsageErrors(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK, `{}`)
	ctx := context.Background()

	_, err := client.Templates.Update(ctx, sparkx.TemplateUpdate{ID: "x"})
	assert.ErrorIs(t, err, sparkx.ErrUsage)

	_, err = client.Templates.Update(ctx, sparkx.TemplateUpdate{ID: "x", Publish: true, Patch: &sparkx.TemplatePatch{}})
	assert.ErrorIs(t, err, sparkx.ErrUsage)

	_, err = client.Templates.Create(ctx, sparkx.Template{ID: "x"})
	assert.ErrorIs(t, err, sparkx.ErrUsage)

	_, err = client.Templates.Delete(ctx, "")
	assert.ErrorIs(t, err, sparkx.ErrUsage)

	assert.Zero(t, api.count())
}

func TestRecipientLists_Operations(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK,
		`{"results":{"id":"vips","total_accepted_recipients":1,"total_rejected_recipients":0}}`)
	ctx := context.Background()

	_, err := client.RecipientLists.Find(ctx, "vips", true)
	require.NoError(t, err)
	assert.Equal(t, "true", api.last().Query.Get("show_recipients"))

	list := sparkx.RecipientList{
		ID:         "vips",
		Name:       "VIPs",
		Recipients: []sparkx.Recipient{{Address: sparkx.Address{Email: "a@example.com", Name: "A"}}},
	}
	res, err := client.RecipientLists.Create(ctx, list, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Results.TotalAcceptedRecipients)
	assert.Equal(t, "5", api.last().Query.Get("num_rcpt_errors"))
	assert.Equal(t, "vips", api.last().Body["id"])

	_, err = client.RecipientLists.Update(ctx, list, 0)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/recipient-lists/vips", api.last().Path)
	assert.NotContains(t, api.last().Body, "id")
	assert.Empty(t, api.last().Query)
}

func TestRelayWebhooks_Operations(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK, `{"results":{"id":"relay-1"}}`)
	ctx := context.Background()

	res, err := client.RelayWebhooks.Create(ctx, sparkx.RelayWebhook{
		Name:   "inbound",
		Target: "https://hooks.example.com/relay",
		Match:  &sparkx.RelayMatch{Domain: "in.example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "relay-1", res.Results.ID)
	assert.Equal(t, map[string]any{"domain": "in.example.com"}, api.last().Body["match"])

	_, err = client.RelayWebhooks.Update(ctx, sparkx.RelayWebhook{ID: "relay-1", Name: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/relay-webhooks/relay-1", api.last().Path)
	assert.Equal(t, map[string]any{"name": "renamed"}, api.last().Body)

	_, err = client.RelayWebhooks.Create(ctx, sparkx.RelayWebhook{Target: "https://x"})
	assert.ErrorIs(t, err, sparkx.ErrUsage)
}

func TestSubaccounts_Operations(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK,
		`{"results":{"subaccount_id":888,"key":"cf806c8c","label":"API Key for Sub","short_key":"cf80"}}`)
	ctx := context.Background()

	res, err := client.Subaccounts.Create(ctx, sparkx.SubaccountCreate{
		Name:      "Sub",
		KeyLabel:  "API Key for Sub",
		KeyGrants: []string{"smtp/inject", "transmissions/modify"},
	})
	require.NoError(t, err)
	assert.Equal(t, 888, res.Results.SubaccountID)
	assert.Equal(t, "cf80", res.Results.ShortKey)

	_, err = client.Subaccounts.Update(ctx, sparkx.SubaccountUpdate{ID: 888, Status: "suspended"})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/subaccounts/888", api.last().Path)
	assert.Equal(t, map[string]any{"status": "suspended"}, api.last().Body)

	_, err = client.Subaccounts.Find(ctx, 0)
	assert.ErrorIs(t, err, sparkx.ErrUsage)

	_, err = client.Subaccounts.Create(ctx, sparkx.SubaccountCreate{Name: "NoKey"})
	assert.ErrorIs(t, err, sparkx.ErrUsage)
}

func TestInboundDomains_Create(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK, ``)

	_, err := client.InboundDomains.Create(context.Background(), "in.example.com")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"domain": "in.example.com"}, api.last().Body)
}

func TestMessageEvents_Search(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK,
		`{"results":[{"type":"bounce","bounce_class":"10","rcpt_to":"a@example.com","timestamp":"2016-04-18T20:23:41.000Z"}],"total_count":1,"links":[]}`)

	res, err := client.MessageEvents.Search(context.Background(), sparkx.MessageEventsSearch{
		BounceClasses: []int{10, 30},
		Events:        []string{"bounce", "delivery"},
		Recipients:    []string{"a@example.com"},
		PerPage:       100,
		From:          "2016-04-01T00:00",
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, sparkx.FlexInt(10), res.Results[0].BounceClass)
	assert.Equal(t, 1, res.TotalCount)

	q := api.last().Query
	assert.Equal(t, "10,30", q.Get("bounce_classes"))
	assert.Equal(t, "bounce,delivery", q.Get("events"))
	assert.Equal(t, "a@example.com", q.Get("recipients"))
	assert.Equal(t, "100", q.Get("per_page"))
	assert.Equal(t, "2016-04-01T00:00", q.Get("from"))
}

func TestWebhooks_Operations(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK, `{"results":{"id":"wh-1","links":[{"href":"/webhooks/wh-1","rel":"urn.spc.webhooks","method":["GET","PUT"]}]}}`)
	ctx := context.Background()

	res, err := client.Webhooks.Create(ctx, sparkx.Webhook{
		Name:     "events",
		Target:   "https://hooks.example.com/sparkpost",
		Events:   []string{"delivery", "bounce"},
		AuthType: "none",
	})
	require.NoError(t, err)
	assert.Equal(t, "wh-1", res.Results.ID)
	require.Len(t, res.Results.Links, 1)
	assert.Equal(t, []string{"GET", "PUT"}, res.Results.Links[0].Method)
	assert.Equal(t, "none", api.last().Body["auth_type"])

	_, err = client.Webhooks.Describe(ctx, "wh-1", "")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/webhooks/wh-1", api.last().Path)

	_, err = client.Webhooks.Validate(ctx, "wh-1", map[string]any{"msys": map[string]any{}})
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/webhooks/wh-1/validate", api.last().Path)
	assert.Equal(t, map[string]any{"message": map[string]any{"msys": map[string]any{}}}, api.last().Body)

	_, err = client.Webhooks.Delete(ctx, "wh-1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, api.last().Method)
}

func TestWebhooks_BatchStatusDocumentationSamples(t *testing.T) {
	api, client := newFakeAPI(t, http.StatusOK, `{"results":[]}`)
	ctx := context.Background()

	_, err := client.Webhooks.All(ctx, "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", api.last().Query.Get("timezone"))

	_, err = client.Webhooks.GetBatchStatus(ctx, "wh-1", 25)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/webhooks/wh-1/batch-status", api.last().Path)
	assert.Equal(t, "25", api.last().Query.Get("limit"))

	_, err = client.Webhooks.GetSamples(ctx, "bounce", "open")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/webhooks/events/samples", api.last().Path)
	assert.Equal(t, "bounce,open", api.last().Query.Get("events"))

	api.respond(http.StatusOK, `{"results":{"message_event":{"description":"Message events","display_name":"Message Events","events":{"bounce":{"description":"Remote MTA has permanently rejected a message.","display_name":"Bounce","event":{"type":{"description":"Type of event","sampleValue":"bounce"}}}}}}}`)
	doc, err := client.Webhooks.GetDocumentation(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/webhooks/events/documentation", api.last().Path)
	assert.Equal(t, "bounce", doc.Results["message_event"].Events["bounce"].Event["type"].SampleValue)
}
