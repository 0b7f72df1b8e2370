// Package qrcode 生成入住凭证二维码
package qrcode

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Voucher 入住凭证，扫码核验时还原预订信息
type Voucher struct {
	ReservationID int64
	RoomNumber    string
	GuestName     string
}

// Payload 凭证编码为二维码文本
func (v Voucher) Payload() string {
	return fmt.Sprintf("reservation:%d;room:%s;guest:%s", v.ReservationID, v.RoomNumber, v.GuestName)
}

// ParsePayload 解析凭证文本，格式不符返回错误
func ParsePayload(payload string) (Voucher, error) {
	var v Voucher
	for _, part := range strings.Split(payload, ";") {
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			return Voucher{}, fmt.Errorf("无效的凭证内容: %s", payload)
		}
		switch key {
		case "reservation":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return Voucher{}, fmt.Errorf("无效的预订编号: %s", value)
			}
			v.ReservationID = id
		case "room":
			v.RoomNumber = value
		case "guest":
			v.GuestName = value
		}
	}
	if v.ReservationID == 0 || v.GuestName == "" {
		return Voucher{}, fmt.Errorf("无效的凭证内容: %s", payload)
	}
	return v, nil
}

// Generator 入住凭证二维码生成器
type Generator struct {
	size  int // 边长像素
	level qrcode.RecoveryLevel
}

// Option 生成器选项
type Option func(*Generator)

// WithSize 设置二维码尺寸
func WithSize(size int) Option {
	return func(g *Generator) {
		g.size = size
	}
}

// WithRecoveryLevel 设置纠错级别
func WithRecoveryLevel(level qrcode.RecoveryLevel) Option {
	return func(g *Generator) {
		g.level = level
	}
}

// NewGenerator 创建生成器，默认 256 像素、15% 纠错
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		size:  256,
		level: qrcode.Medium,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// VoucherPNG 生成凭证二维码的 PNG 数据
func (g *Generator) VoucherPNG(v Voucher) ([]byte, error) {
	data, err := qrcode.Encode(v.Payload(), g.level, g.size)
	if err != nil {
		return nil, fmt.Errorf("生成入住凭证二维码失败: %w", err)
	}
	return data, nil
}

// VoucherDataURL 生成凭证二维码的 Data URL，可直接嵌入页面
func (g *Generator) VoucherDataURL(v Voucher) (string, error) {
	data, err := g.VoucherPNG(v)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}
