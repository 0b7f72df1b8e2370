// Package qrcode 入住凭证二维码单元测试
package qrcode

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	goqrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator_Default(t *testing.T) {
	gen := NewGenerator()
	require.NotNil(t, gen)
	assert.Equal(t, 256, gen.size)
	assert.Equal(t, goqrcode.Medium, gen.level)
}

func TestNewGenerator_Options(t *testing.T) {
	gen := NewGenerator(WithSize(512), WithRecoveryLevel(goqrcode.High))
	assert.Equal(t, 512, gen.size)
	assert.Equal(t, goqrcode.High, gen.level)
}

func TestVoucher_Payload(t *testing.T) {
	v := Voucher{ReservationID: 42, RoomNumber: "701", GuestName: "张三"}
	assert.Equal(t, "reservation:42;room:701;guest:张三", v.Payload())
}

func TestParsePayload(t *testing.T) {
	v := Voucher{ReservationID: 42, RoomNumber: "701", GuestName: "张三"}

	parsed, err := ParsePayload(v.Payload())
	require.NoError(t, err)
	assert.Equal(t, v, parsed)

	// 未分配房间时房号为空
	parsed, err = ParsePayload("reservation:7;room:;guest:李四")
	require.NoError(t, err)
	assert.Equal(t, int64(7), parsed.ReservationID)
	assert.Empty(t, parsed.RoomNumber)
}

func TestParsePayload_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"空内容", ""},
		{"缺少分隔符", "reservation=42"},
		{"预订编号非数字", "reservation:abc;room:701;guest:张三"},
		{"缺少预订编号", "room:701;guest:张三"},
		{"缺少客人姓名", "reservation:42;room:701;guest:"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePayload(tc.payload)
			assert.Error(t, err)
		})
	}
}

func TestGenerator_VoucherPNG(t *testing.T) {
	gen := NewGenerator(WithSize(256))
	v := Voucher{ReservationID: 1, RoomNumber: "101", GuestName: "张三"}

	data, err := gen.VoucherPNG(v)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestGenerator_VoucherPNG_ContentTooLong(t *testing.T) {
	gen := NewGenerator()
	v := Voucher{ReservationID: 1, RoomNumber: "101", GuestName: strings.Repeat("姓", 2000)}

	_, err := gen.VoucherPNG(v)
	assert.Error(t, err)
}

func TestGenerator_VoucherDataURL(t *testing.T) {
	gen := NewGenerator()
	v := Voucher{ReservationID: 9, RoomNumber: "305", GuestName: "王五"}

	dataURL, err := gen.VoucherDataURL(v)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/png;base64,"))
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(raw))
	assert.NoError(t, err)
}
