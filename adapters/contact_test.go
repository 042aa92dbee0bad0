package adapters

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindContacts_EmailsSortedAndUnique(t *testing.T) {
	blob := `Write to support@shop.example.com or hello@shop.example.com today
	<a href="mailto:support@shop.example.com">support@shop.example.com</a> press@brand.co.uk`

	info := FindContacts(blob)

	assert.Equal(t, []string{"hello@shop.example.com", "press@brand.co.uk", "support@shop.example.com"}, info.Emails)
}

func TestFindContacts_PhonesSortedAndUnique(t *testing.T) {
	blob := `Call +1 (555) 010-2000 or 020 7946 0018. Again: +1 (555) 010-2000. Order 123.`

	info := FindContacts(blob)

	require.NotEmpty(t, info.Phones)
	assert.True(t, sort.StringsAreSorted(info.Phones))
	assert.Contains(t, info.Phones, "+1 (555) 010-2000")
	assert.Contains(t, info.Phones, "020 7946 0018")
	assert.Len(t, info.Phones, 2)
}

func TestFindContacts_NoMatches(t *testing.T) {
	info := FindContacts("nothing to see")

	assert.NotNil(t, info.Emails)
	assert.NotNil(t, info.Phones)
	assert.Empty(t, info.Emails)
	assert.Empty(t, info.Phones)
	assert.Empty(t, info.Socials)
}

func TestFindContacts_Socials(t *testing.T) {
	blob := `<a href="https://www.Instagram.com/acme_store">ig</a>
<a href="https://instagram.com/second">ig2</a>
<a href='https://facebook.com/acme'>fb</a>
<a href="http://www.youtube.com/@acme">yt</a>
<a href="https://example.com/twitter.com/nope">not twitter</a>`

	info := FindContacts(blob)
	handles := info.SocialHandles()

	assert.Equal(t, "https://www.Instagram.com/acme_store", handles.Instagram)
	assert.Equal(t, "https://facebook.com/acme", handles.Facebook)
	assert.Equal(t, "http://www.youtube.com/@acme", handles.YouTube)
	assert.Empty(t, handles.Twitter)
	assert.Empty(t, handles.TikTok)
	assert.Empty(t, handles.LinkedIn)
	assert.NotNil(t, handles.Others)
}

func TestNormalizePhones(t *testing.T) {
	phones := []string{"+1 650-253-0000", "(650) 253-0000", "12345678"}

	normalized := NormalizePhones(phones, "US")

	assert.Equal(t, []string{"+16502530000"}, normalized)
}
