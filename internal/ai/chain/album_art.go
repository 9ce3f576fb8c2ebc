package chain

import (
	"context"
	"encoding/base64"
	"errors"

	"myzai/internal/ai/component"
	"myzai/internal/model"
)

// ErrNoImage 模型响应中没有图片
var ErrNoImage = errors.New("could not generate image")

// DefaultImageMIMEType 响应未声明类型时使用
const DefaultImageMIMEType = "image/png"

// AlbumArtChain 专辑封面生成链
type AlbumArtChain struct {
	imageModel component.ImageModel
}

// NewAlbumArtChain 创建封面生成链
func NewAlbumArtChain(imageModel component.ImageModel) *AlbumArtChain {
	return &AlbumArtChain{imageModel: imageModel}
}

// Artwork 生成结果，Data 为解码后的图片字节
type Artwork struct {
	Image *model.GeneratedImage
	Data  []byte
}

// Run 生成封面，结果以 data URL 形式返回
func (c *AlbumArtChain) Run(ctx context.Context, description string) (*Artwork, error) {
	data, mimeType, err := c.imageModel.Generate(ctx, description)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	if mimeType == "" {
		mimeType = DefaultImageMIMEType
	}

	return &Artwork{
		Image: &model.GeneratedImage{
			URL:      DataURL(mimeType, data),
			Prompt:   description,
			MIMEType: mimeType,
		},
		Data: data,
	}, nil
}

// DataURL 组装 data:<mime>;base64,<payload>
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
