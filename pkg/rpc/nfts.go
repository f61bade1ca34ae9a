package rpc

import (
	"context"
)

// UnassignedNFTs fetches the NFTs of a series that have not been assigned
// to any wallet yet, oldest-minted first. Burned NFTs are excluded
// server-side.
func (c *Client) UnassignedNFTs(ctx context.Context, seriesID string) ([]NFT, error) {
	var resp nftsBySeriesResponse
	payload := nftsBySeriesRequest{
		SeriesID:     seriesID,
		ExcludeBurnt: true,
		Unassigned:   true,
	}
	if err := c.indexer.doJSON(ctx, "POST", nftsBySeriesPath, payload, &resp); err != nil {
		return nil, err
	}
	return resp.NFTs, nil
}
